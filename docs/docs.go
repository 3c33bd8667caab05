// Package docs registers the OpenAPI document of the inspector API with swag.
// The paths mirror the @Router annotations of internal/interfaces/http/handler;
// regenerate with `swag init -g internal/interfaces/http/router/router.go` after
// changing them.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Health check", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}}
        },
        "/sites": {
            "get": {"tags": ["sites"], "summary": "List sites", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "500": {"description": "Internal Server Error"}}},
            "post": {"tags": ["sites"], "summary": "Register site", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterSiteRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "500": {"description": "Internal Server Error"}}}
        },
        "/sites/{site_id}/orders": {
            "get": {"tags": ["orders"], "summary": "List cached orders", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true},
                    {"type": "string", "description": "Comma separated statuses", "name": "status", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/sites/{site_id}/orders/fetch": {
            "post": {"tags": ["orders"], "summary": "Fetch orders", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/dto.FetchOrdersRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FetchResult"}}, "422": {"description": "Unprocessable Entity"}, "502": {"description": "Bad Gateway"}}}
        },
        "/sites/{site_id}/orders/{order_id}": {
            "get": {"tags": ["orders"], "summary": "Get cached order", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Remote order ID", "name": "order_id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/sites/{site_id}/orders/{order_id}/notes": {
            "get": {"tags": ["orders"], "summary": "List order notes", "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Remote order ID", "name": "order_id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/sites/{site_id}/orders/{order_id}/status": {
            "put": {"tags": ["orders"], "summary": "Update order status", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Remote order ID", "name": "order_id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateOrderStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "502": {"description": "Bad Gateway"}}}
        },
        "/sites/{site_id}/coupons": {
            "get": {"tags": ["coupons"], "summary": "List cached coupons", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/sites/{site_id}/coupons/fetch": {
            "post": {"tags": ["coupons"], "summary": "Fetch coupons", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "schema": {"$ref": "#/definitions/dto.PageRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FetchResult"}}, "502": {"description": "Bad Gateway"}}}
        },
        "/sites/{site_id}/customers": {
            "get": {"tags": ["customers"], "summary": "List cached customers", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/sites/{site_id}/customers/fetch": {
            "post": {"tags": ["customers"], "summary": "Fetch customers", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FetchResult"}}, "502": {"description": "Bad Gateway"}}}
        },
        "/sites/{site_id}/prompts": {
            "get": {"tags": ["prompts"], "summary": "List cached blogging prompts", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/sites/{site_id}/prompts/fetch": {
            "post": {"tags": ["prompts"], "summary": "Fetch blogging prompts", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FetchResult"}}, "502": {"description": "Bad Gateway"}}}
        },
        "/notifications": {
            "get": {"tags": ["notifications"], "summary": "List cached notifications", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Comma separated kinds", "name": "type", "in": "query"},
                    {"type": "string", "description": "Comma separated subkinds", "name": "subtype", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}}
        },
        "/notifications/fetch": {
            "post": {"tags": ["notifications"], "summary": "Fetch notifications", "produces": ["application/json"],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.FetchResult"}}, "502": {"description": "Bad Gateway"}}}
        },
        "/notifications/seen": {
            "post": {"tags": ["notifications"], "summary": "Mark notifications seen", "consumes": ["application/json"], "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/scheduler/jobs": {
            "get": {"tags": ["sync"], "summary": "List sync jobs", "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}}
        },
        "/sites/{site_id}/sync": {
            "post": {"tags": ["sync"], "summary": "Trigger site sync", "produces": ["application/json"],
                "parameters": [{"type": "integer", "description": "Local site ID", "name": "site_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}, "500": {"description": "Internal Server Error"}}}
        }
    },
    "definitions": {
        "dto.RegisterSiteRequest": {
            "type": "object",
            "required": ["site_id", "url"],
            "properties": {
                "site_id": {"type": "integer"},
                "name": {"type": "string"},
                "url": {"type": "string"},
                "is_wpcom": {"type": "boolean"},
                "is_jetpack_connected": {"type": "boolean"},
                "has_woocommerce": {"type": "boolean"}
            }
        },
        "dto.FetchOrdersRequest": {
            "type": "object",
            "properties": {"status": {"type": "string"}, "load_more": {"type": "boolean"}}
        },
        "dto.UpdateOrderStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string"}}
        },
        "dto.PageRequest": {
            "type": "object",
            "properties": {"page": {"type": "integer", "minimum": 1}, "page_size": {"type": "integer", "minimum": 1, "maximum": 100}}
        },
        "dto.FetchResult": {
            "type": "object",
            "properties": {"count": {"type": "integer"}, "can_load_more": {"type": "boolean"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FluxC Inspector API",
	Description:      "Read and refresh the local WooCommerce and WordPress.com cache",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
