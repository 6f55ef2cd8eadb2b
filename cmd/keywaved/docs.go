package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           keywave API
// @version         1.0
// @description     Status and subscriber endpoints for the keywave key event broadcaster.
//
// @contact.name   keywave maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
