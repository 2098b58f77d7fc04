// Package docs holds the OpenAPI document served by swaggerkit
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.0.3",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/predict": {
            "post": {
                "tags": ["Predict"],
                "summary": "Classify a news text",
                "description": "Returns 1 for unreliable and 0 for reliable. The term-weight variant also returns a label.",
                "operationId": "predict",
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {"$ref": "#/components/schemas/PredictRequest"}
                        }
                    }
                },
                "responses": {
                    "200": {
                        "description": "OK",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/PredictResponse"},
                                "example": {"prediction": 1}
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/ErrorResponse"},
                                "example": {"error": "No text provided"}
                            }
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "content": {
                            "application/json": {
                                "schema": {"$ref": "#/components/schemas/ErrorResponse"},
                                "example": {"error": "Model not loaded"}
                            }
                        }
                    }
                }
            }
        },
        "/api/v1/meta/health": {
            "get": {
                "tags": ["Meta"],
                "summary": "Health check",
                "operationId": "metaHealth",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/HealthResponse"}}}}}
            }
        },
        "/api/v1/meta/ready": {
            "get": {
                "tags": ["Meta"],
                "summary": "Readiness of the loaded model",
                "operationId": "metaReady",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ReadyResponse"}}}}}
            }
        },
        "/api/v1/meta/version": {
            "get": {
                "tags": ["Meta"],
                "summary": "Build and version info",
                "operationId": "metaVersion",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/BuildInfo"}}}}}
            }
        },
        "/api/v1/meta/service": {
            "get": {
                "tags": ["Meta"],
                "summary": "Service info and uptime",
                "operationId": "metaService",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ServiceResponse"}}}}}
            }
        },
        "/api/v1/meta/model": {
            "get": {
                "tags": ["Meta"],
                "summary": "Loaded model and artifact details",
                "operationId": "metaModel",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ModelInfo"}}}}}
            }
        }
    },
    "components": {
        "schemas": {
            "PredictRequest": {
                "type": "object",
                "required": ["text"],
                "properties": {
                    "text": {"type": "string", "example": "Scientists confirm the moon is made of cheese"},
                    "title": {"type": "string", "description": "accepted and ignored"}
                }
            },
            "PredictResponse": {
                "type": "object",
                "required": ["prediction"],
                "properties": {
                    "prediction": {"type": "integer", "enum": [0, 1]},
                    "label": {"type": "string", "example": "Unreliable"},
                    "probability": {"type": "number", "format": "double"}
                }
            },
            "ErrorResponse": {
                "type": "object",
                "required": ["error"],
                "properties": {"error": {"type": "string"}}
            },
            "HealthResponse": {
                "type": "object",
                "properties": {
                    "ok": {"type": "boolean"},
                    "service": {"type": "string"},
                    "started": {"type": "string", "format": "date-time"},
                    "now": {"type": "string", "format": "date-time"}
                }
            },
            "ReadyResponse": {
                "type": "object",
                "properties": {
                    "status": {"type": "string", "enum": ["ok", "fail"]},
                    "checks": {"type": "array", "items": {"$ref": "#/components/schemas/ReadyCheck"}},
                    "now": {"type": "string", "format": "date-time"}
                }
            },
            "ReadyCheck": {
                "type": "object",
                "properties": {
                    "name": {"type": "string"},
                    "status": {"type": "string"},
                    "error": {"type": "string"}
                }
            },
            "BuildInfo": {
                "type": "object",
                "properties": {
                    "service": {"type": "string"},
                    "version": {"type": "string"},
                    "commit": {"type": "string"},
                    "date": {"type": "string"}
                }
            },
            "ServiceResponse": {
                "type": "object",
                "properties": {
                    "name": {"type": "string"},
                    "started": {"type": "string", "format": "date-time"},
                    "uptime": {"type": "integer", "format": "int64"}
                }
            },
            "ModelInfo": {
                "type": "object",
                "properties": {
                    "variant": {"type": "string", "enum": ["sequence", "tfidf"]},
                    "ready": {"type": "boolean"},
                    "error": {"type": "string"},
                    "artifacts": {"type": "array", "items": {"type": "object"}},
                    "vocab_size": {"type": "integer"},
                    "max_len": {"type": "integer"},
                    "min_input_len": {"type": "integer"},
                    "model": {"type": "object"}
                }
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
	Title:            "Fake News Detection API",
	Description:      "Classifies news text as reliable or unreliable.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
