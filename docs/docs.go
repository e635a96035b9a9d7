// Package docs holds the swagger description of the book manager api.
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
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["status"],
                "summary": "Service availability",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List books in insertion order",
                "parameters": [
                    {"type": "string", "enum": ["in-stock", "checked-out"], "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Add a book from a json body or from the isbn, title and author query parameters",
                "parameters": [
                    {"name": "book", "in": "body", "schema": {"$ref": "#/definitions/main.Book"}},
                    {"type": "integer", "name": "isbn", "in": "query"},
                    {"type": "string", "name": "title", "in": "query"},
                    {"type": "string", "name": "author", "in": "query"}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Remove every book",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}}}
            }
        },
        "/v1/books/{isbn}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Get the first book with the isbn",
                "parameters": [{"type": "integer", "name": "isbn", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["books"],
                "summary": "Update the first book with the isbn",
                "parameters": [
                    {"type": "integer", "name": "isbn", "in": "path", "required": true},
                    {"name": "book", "in": "body", "schema": {"$ref": "#/definitions/main.Book"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Remove the first book with the isbn",
                "parameters": [{"type": "integer", "name": "isbn", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/v1/books/{isbn}/checkout": {
            "put": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Set the checkout status of the first book with the isbn",
                "parameters": [
                    {"type": "integer", "name": "isbn", "in": "path", "required": true},
                    {"type": "boolean", "name": "status", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/v1/isbns/{isbn}/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List every book with the isbn",
                "parameters": [{"type": "integer", "name": "isbn", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}}}
            },
            "put": {
                "consumes": ["application/json"],
                "tags": ["books"],
                "summary": "Update every book with the isbn",
                "parameters": [
                    {"type": "integer", "name": "isbn", "in": "path", "required": true},
                    {"name": "book", "in": "body", "schema": {"$ref": "#/definitions/main.Book"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Remove every book with the isbn",
                "parameters": [{"type": "integer", "name": "isbn", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "main.Book": {
            "type": "object",
            "properties": {
                "isbn": {"type": "integer"},
                "title": {"type": "string"},
                "author": {"type": "string"},
                "checkedOut": {"type": "boolean"}
            }
        },
        "main.APIResponse": {
            "type": "object",
            "properties": {
                "requestid": {"type": "string"},
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "total": {"type": "integer"},
                "data": {}
            }
        },
        "main.APIError": {
            "type": "object",
            "properties": {
                "requestid": {"type": "string"},
                "status": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Book Manager API",
	Description:      "In-memory books inventory with checkout tracking.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
