// Package docs holds the OpenAPI document served under /swagger. It is
// maintained by hand in the swag template format; docs_test.go checks it
// against the registered routes.
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
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a customer account",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "Email already registered", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in with email and password",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Exchange a refresh token for a new token pair",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "401": {"description": "Invalid refresh token", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/auth/change-password": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Change the caller's password",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Get the caller's profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/event-types": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "List event types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Create a custom event type",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/locations": {
            "get": {
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "List location types",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/admin/event-types/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Delete an event type",
                "parameters": [
                    {"type": "string", "description": "Event type ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/admin/locations": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Create a location type",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/admin/locations/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["lookups"],
                "summary": "Delete a location type",
                "parameters": [
                    {"type": "string", "description": "Location type ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/catalog/items/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Get a catalog item",
                "parameters": [
                    {"type": "string", "description": "Item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/catalog/{kind}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List catalog items of a kind grouped by category",
                "parameters": [
                    {"type": "string", "description": "decoration, furniture or utensil", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Only this category", "name": "category", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "400": {"description": "Unknown kind", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/catalog/{kind}/categories": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List the categories of a kind",
                "parameters": [
                    {"type": "string", "description": "decoration, furniture or utensil", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/admin/catalog/{kind}/items": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Create a catalog item",
                "parameters": [
                    {"type": "string", "description": "decoration, furniture or utensil", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/admin/catalog/items/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Update a catalog item",
                "parameters": [
                    {"type": "string", "description": "Item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Delete a catalog item",
                "parameters": [
                    {"type": "string", "description": "Item ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/admin/catalog/{kind}/categories/{category}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "Delete every item in a category",
                "parameters": [
                    {"type": "string", "description": "decoration, furniture or utensil", "name": "kind", "in": "path", "required": true},
                    {"type": "string", "description": "Category name", "name": "category", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/drafts/current": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Get the current booking draft",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            },
            "patch": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Update event details on the draft",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "400": {"description": "Invalid event info", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Discard the current draft",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/drafts/current/visits/{kind}": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Record that a catalog screen was opened",
                "parameters": [
                    {"type": "string", "description": "decoration, furniture or utensil", "name": "kind", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/drafts/current/cart": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Add a catalog item to the cart",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "Item not found", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/drafts/current/cart/{itemId}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Change the quantity of a cart line",
                "parameters": [
                    {"type": "string", "description": "Catalog item ID", "name": "itemId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "Item not in cart", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["drafts"],
                "summary": "Remove a line from the cart",
                "parameters": [
                    {"type": "string", "description": "Catalog item ID", "name": "itemId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/bookings/checkout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Confirm the draft as a paid booking",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "Checkout already in progress", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "422": {"description": "Draft not ready", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/bookings/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Get a booking",
                "parameters": [
                    {"type": "string", "description": "Booking ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/bookings/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "Cancel a booking and refund its payment",
                "parameters": [
                    {"type": "string", "description": "Booking ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "Already cancelled", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/users/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List the caller's bookings",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/admin/bookings": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["bookings"],
                "summary": "List all bookings",
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "string", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        }
    },
    "definitions": {
        "response.StandardApiResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "status_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Eventures API",
	Description:      "Event booking: catalog browsing, booking drafts and checkout.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
