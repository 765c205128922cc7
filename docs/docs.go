// Package docs registers the Swagger document served at /swagger.
// Regenerate with `swag init` after changing controller annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}}},
        "/user/signup": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/user/signin": {"post": {"tags": ["auth"], "summary": "Sign in", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/user/me": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["user"], "summary": "Current user's profile", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/user/profile": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["user"], "summary": "Current user's profile", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"ApiKeyAuth": []}], "tags": ["user"], "summary": "Update profile fields", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/user/password": {"put": {"security": [{"ApiKeyAuth": []}], "tags": ["user"], "summary": "Change password", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/user/activity": {"put": {"security": [{"ApiKeyAuth": []}], "tags": ["user"], "summary": "Record activity", "responses": {"200": {"description": "OK"}}}},
        "/user": {"delete": {"security": [{"ApiKeyAuth": []}], "tags": ["user"], "summary": "Delete the current account", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/roadmap": {
            "get": {"security": [{"ApiKeyAuth": []}], "tags": ["roadmap"], "summary": "List the caller's roadmaps", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"ApiKeyAuth": []}], "tags": ["roadmap"], "summary": "Generate a roadmap", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}}
        },
        "/roadmap/import": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["roadmap"], "summary": "Create a roadmap from an outline", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/roadmap/{id}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["roadmap"], "summary": "Get one roadmap", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/roadmap/progress": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["roadmap"], "summary": "Mark a topic complete", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}}},
        "/module-content/generate": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["module-content"], "summary": "Get or generate lesson content for a topic", "responses": {"200": {"description": "Already stored"}, "201": {"description": "Generated"}, "502": {"description": "Bad Gateway"}}}},
        "/module-content/{topic}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["module-content"], "summary": "Get stored lesson content", "parameters": [{"type": "string", "name": "topic", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/quiz/generate": {"post": {"security": [{"ApiKeyAuth": []}], "tags": ["quiz"], "summary": "Get or generate a quiz for a topic", "responses": {"200": {"description": "Already stored"}, "201": {"description": "Generated"}, "502": {"description": "Bad Gateway"}}}},
        "/quiz/{topic}": {"get": {"security": [{"ApiKeyAuth": []}], "tags": ["quiz"], "summary": "Get a stored quiz", "parameters": [{"type": "string", "name": "topic", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}}
    },
    "securityDefinitions": {
        "ApiKeyAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:5000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "LearnPath API",
	Description:      "Personalised learning roadmaps, lesson content and quizzes.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
