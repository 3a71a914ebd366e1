// Package docs registers the OpenAPI document served under /swagger.
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
        "/auth/register": {
            "post": {"tags": ["auth"], "summary": "Register a new user", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Sign out",
                "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/google/login": {
            "get": {"tags": ["auth"], "summary": "Start Google sign-in", "responses": {"307": {"description": "Temporary Redirect"}}}
        },
        "/auth/google/callback": {
            "get": {"tags": ["auth"], "summary": "Finish Google sign-in", "responses": {"303": {"description": "See Other"}}}
        },
        "/v1/dashboards": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboards"], "summary": "List or search dashboards", "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "q", "in": "query"}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["dashboards"], "summary": "Create a dashboard", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/dashboards/count": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboards"], "summary": "Count the caller's dashboards",
                "responses": {"200": {"description": "OK"}}}
        },
        "/v1/dashboards/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["dashboards"], "summary": "Get a dashboard",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["dashboards"], "summary": "Update a dashboard",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["dashboards"], "summary": "Delete a dashboard",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/v1/admin/dashboards/count": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Count every dashboard",
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}
        },
        "/v1/workspace/layout": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["workspace"], "summary": "Get the caller's workspace layout",
                "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["workspace"], "summary": "Save the caller's workspace layout",
                "responses": {"204": {"description": "No Content"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["workspace"], "summary": "Reset the caller's workspace layout",
                "responses": {"200": {"description": "OK"}}}
        },
        "/v1/workspace/tabs": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["workspace"], "summary": "Create a tab descriptor",
                "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/v1/workspace/palette": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["workspace"], "summary": "List draggable components",
                "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Dashboard Workspace API",
	Description:      "Dashboard shortcuts, per-user workspace layouts and session sign-in.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
