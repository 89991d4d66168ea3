/*
Package resteasy takes the boilerplate out of declaring JSON REST resources on
top of net/http. It binds resource values to url rules, dispatches HTTP verbs
to the matching method, and shapes plain return values into JSON responses.

The main building blocks are:
	* API - wraps the host router and registers resources on it
	* Resource - any value exposing verb methods via Getter, Poster, Putter, Patcher, Deleter, Header or Optioner
	* Responder - turns a method's return value into a response, JSON by default
	* Blueprint - a named rule group registered onto an app later, at most once

Request parsing, field filtering, authentication and structured error handling
are deliberately left to the packages you compose in. The seams for them are
Decorator middleware, the Responder and the ErrorHandler.

This package uses zerolog for tracing. Logging is discarded by default and can
be enabled with API.WithLogger.
*/

package resteasy
