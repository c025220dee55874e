package main

// General API documentation for swaggo. Regenerate docs/ with
// `swag init -g cmd/llamagate/docs.go -o docs`.
//
// @title           llamagate API
// @version         1.0
// @description     OpenAI-style chat completions over a single in-process llama.cpp model.
//
// @contact.name   llamagate maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
