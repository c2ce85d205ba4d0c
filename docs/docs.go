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
        "/login": {"post": {"tags": ["auth"], "summary": "Login admin", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/refresh": {"post": {"tags": ["auth"], "summary": "Refresh token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/logout": {"post": {"tags": ["auth"], "summary": "Logout", "responses": {"200": {"description": "OK"}}}},
        "/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Get current admin", "responses": {"200": {"description": "OK"}}}},
        "/api/revenue": {"get": {"security": [{"BearerAuth": []}], "tags": ["revenue"], "summary": "List revenue records", "responses": {"200": {"description": "OK"}}}},
        "/api/revenue/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["revenue"], "summary": "Revenue statistics", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/api/revenue/daily": {"get": {"security": [{"BearerAuth": []}], "tags": ["revenue"], "summary": "Daily revenue of a month", "responses": {"200": {"description": "OK"}}}},
        "/api/revenue/products": {"get": {"security": [{"BearerAuth": []}], "tags": ["revenue"], "summary": "Top products", "responses": {"200": {"description": "OK"}}}},
        "/api/revenue/categories": {"get": {"security": [{"BearerAuth": []}], "tags": ["revenue"], "summary": "Revenue per category", "responses": {"200": {"description": "OK"}}}},
        "/api/revenue/export": {"get": {"security": [{"BearerAuth": []}], "tags": ["revenue"], "summary": "Export monthly revenue report", "produces": ["application/pdf", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "responses": {"200": {"description": "OK"}}}},
        "/api/orders": {"get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "List orders", "responses": {"200": {"description": "OK"}}}},
        "/api/orders/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Order statistics", "responses": {"200": {"description": "OK"}}}},
        "/api/orders/{userId}/{orderId}": {"get": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Get order", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/api/orders/{userId}/{orderId}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["orders"], "summary": "Update order status", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/users": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}}},
        "/api/users/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "User statistics", "responses": {"200": {"description": "OK"}}}},
        "/api/users/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get user", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete user", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update user status", "responses": {"200": {"description": "OK"}}}},
        "/api/users/{id}/role": {"patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update user role", "responses": {"200": {"description": "OK"}}}},
        "/api/vouchers": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["vouchers"], "summary": "List vouchers", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["vouchers"], "summary": "Create voucher", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/vouchers/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["vouchers"], "summary": "Voucher statistics", "responses": {"200": {"description": "OK"}}}},
        "/api/vouchers/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["vouchers"], "summary": "Update voucher", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["vouchers"], "summary": "Delete voucher", "responses": {"200": {"description": "OK"}}}
        },
        "/api/reviews": {"get": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "List reviews", "responses": {"200": {"description": "OK"}}}},
        "/api/reviews/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Review statistics", "responses": {"200": {"description": "OK"}}}},
        "/api/reviews/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Delete review", "responses": {"200": {"description": "OK"}}}},
        "/api/banners": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["banners"], "summary": "List banners", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["banners"], "summary": "Create banner", "responses": {"201": {"description": "Created"}}}
        },
        "/api/banners/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["banners"], "summary": "Update banner", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["banners"], "summary": "Delete banner", "responses": {"200": {"description": "OK"}}}
        },
        "/api/banners/{id}/active": {"patch": {"security": [{"BearerAuth": []}], "tags": ["banners"], "summary": "Toggle banner", "responses": {"200": {"description": "OK"}}}},
        "/api/products": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Create product", "responses": {"201": {"description": "Created"}}}
        },
        "/api/products/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Update product", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["products"], "summary": "Delete product", "responses": {"200": {"description": "OK"}}}
        },
        "/api/statistics": {"get": {"security": [{"BearerAuth": []}], "tags": ["statistics"], "summary": "Dashboard statistics", "responses": {"200": {"description": "OK"}}}},
        "/api/audit-logs": {"get": {"security": [{"BearerAuth": []}], "tags": ["audit"], "summary": "List audit logs", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Halora Admin API",
	Description:      "Revenue, order, user, voucher and review analytics for the Halora admin console.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
