// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package lambdafn runs the join handler behind an AWS Lambda function URL.

	lambda.Start(lambdafn.New(joinHandler, slog.Default()))

Base64 request bodies are decoded before parsing. A body that is not valid
base64 is answered like any other unparseable body (400). When the controller
cannot be reached the error is returned to the Lambda runtime, which fails
the invocation with its generic error response.
*/
package lambdafn
