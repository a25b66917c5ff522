// Package docs registers the console API description with swag.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [
                    {"description": "Login credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration details", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.registerRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.messageResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/services": {
            "get": {
                "produces": ["application/json"],
                "tags": ["services"],
                "summary": "Browse services",
                "parameters": [
                    {"type": "string", "description": "Title search term", "name": "q", "in": "query"},
                    {"type": "string", "description": "Category, or all", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/services/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["services"],
                "summary": "Service details",
                "parameters": [
                    {"type": "string", "description": "Service ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/services/{id}/quote": {
            "get": {
                "produces": ["application/json"],
                "tags": ["services"],
                "summary": "Booking quote",
                "parameters": [
                    {"type": "string", "description": "Service ID", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "description": "Hours: 1, 2, 3, 4, 6 or 8", "name": "duration", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/services/{id}/bookings": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["services"],
                "summary": "Book a service",
                "parameters": [
                    {"type": "string", "description": "Service ID", "name": "id", "in": "path", "required": true},
                    {"description": "Booking form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.bookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/admin/tables/{endpoint}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Resource table",
                "parameters": [
                    {"type": "string", "description": "service, booking or user", "name": "endpoint", "in": "path", "required": true},
                    {"type": "string", "description": "Search term", "name": "search", "in": "query"},
                    {"type": "integer", "description": "Page, from 1", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size: 5, 10, 20 or 50", "name": "size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/admin/tables/{endpoint}/{id}/{action}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Row action",
                "parameters": [
                    {"type": "string", "description": "service, booking or user", "name": "endpoint", "in": "path", "required": true},
                    {"type": "string", "description": "Row ID", "name": "id", "in": "path", "required": true},
                    {"type": "string", "description": "approve, reject, accept, decline or delete", "name": "action", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/admin/services": {
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Create service",
                "parameters": [
                    {"description": "Service form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.listingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/admin/services/{id}": {
            "put": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Update service",
                "parameters": [
                    {"type": "string", "description": "Service ID", "name": "id", "in": "path", "required": true},
                    {"description": "Service form", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.listingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            },
            "delete": {
                "tags": ["admin"],
                "summary": "Delete service",
                "parameters": [
                    {"type": "string", "description": "Service ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.errorResponse"}}
                }
            }
        },
        "/notifications": {
            "get": {
                "produces": ["application/json"],
                "tags": ["console"],
                "summary": "Pending notifications",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "api.errorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "redirect": {"type": "string"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "handler.registerRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "role": {"type": "string", "enum": ["USER", "FREELANCER"]}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {
                "user": {"type": "object"},
                "role": {"type": "string"},
                "expires_at": {"type": "string"}
            }
        },
        "handler.messageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "redirect": {"type": "string"}
            }
        },
        "handler.bookingRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2026-10-20"},
                "time": {"type": "string", "example": "10:00"},
                "duration": {"type": "integer", "example": 3},
                "notes": {"type": "string"}
            }
        },
        "handler.listingRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"},
                "rate": {"type": "number"},
                "availability": {"type": "string"},
                "category": {"type": "string"},
                "imageUrl": {"type": "string"}
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
	Title:            "LocalTalent Console API",
	Description:      "Local console over the LocalTalent marketplace API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
