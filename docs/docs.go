// Package docs holds the Swagger 2.0 document served at /swagger/*. Keep it
// in sync with the godoc annotations in main.go and handlers.
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
        "/analyses": {
            "post": {
                "description": "Transcribes an uploaded mp3/wav file (or a recording fetched from audio_url), computes speech metrics and asks the model for strengths, improvements, scores, follow-up questions and stages.",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "analyses"
                ],
                "summary": "Analyze an interview recording",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Interview recording (.mp3 or .wav)",
                        "name": "file",
                        "in": "formData"
                    },
                    {
                        "type": "string",
                        "description": "URL of a recording, used when no file is uploaded",
                        "name": "audio_url",
                        "in": "formData"
                    },
                    {
                        "type": "string",
                        "description": "Mistral API key overriding the configured one",
                        "name": "api_key",
                        "in": "formData"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Analysis report",
                        "schema": {
                            "$ref": "#/definitions/handlers.ReportSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid or missing audio",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Missing or rejected API key",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Transcription service failure",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/reports": {
            "get": {
                "description": "Lists the newest archived reports. Only available when the Supabase archive is configured.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "List archived reports",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Maximum number of reports (1-100)",
                        "name": "limit",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Archived reports",
                        "schema": {
                            "$ref": "#/definitions/handlers.ReportListSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid limit",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Archive disabled",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Get an archived report",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Report ID (uuid)",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Archived report",
                        "schema": {
                            "$ref": "#/definitions/handlers.ReportSuccessResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid report ID",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Archive disabled or report not found",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/handlers.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "handlers.ErrorResponse": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "handlers.ReportListSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.ReportSummary"
                    }
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "handlers.ReportSuccessResponse": {
            "type": "object",
            "properties": {
                "data": {
                    "$ref": "#/definitions/models.Report"
                },
                "message": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                }
            }
        },
        "models.AudioInfo": {
            "type": "object",
            "properties": {
                "content_type": {
                    "type": "string"
                },
                "duration": {
                    "type": "number"
                },
                "filename": {
                    "type": "string"
                },
                "size_bytes": {
                    "type": "integer"
                },
                "source": {
                    "type": "string"
                }
            }
        },
        "models.Insight": {
            "type": "object",
            "properties": {
                "available": {
                    "type": "boolean"
                },
                "error": {
                    "type": "string"
                },
                "items": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "text": {
                    "type": "string"
                }
            }
        },
        "models.Insights": {
            "type": "object",
            "properties": {
                "follow_up": {
                    "$ref": "#/definitions/models.Insight"
                },
                "improvements": {
                    "$ref": "#/definitions/models.Insight"
                },
                "scores": {
                    "$ref": "#/definitions/models.Scores"
                },
                "stages": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.Stage"
                    }
                },
                "strengths": {
                    "$ref": "#/definitions/models.Insight"
                }
            }
        },
        "models.Metrics": {
            "type": "object",
            "properties": {
                "candidate_seconds": {
                    "type": "number"
                },
                "duration": {
                    "type": "number"
                },
                "filler_breakdown": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                },
                "filler_count": {
                    "type": "integer"
                },
                "filler_frequency": {
                    "type": "number"
                },
                "interviewer_seconds": {
                    "type": "number"
                },
                "segment_count": {
                    "type": "integer"
                },
                "talk_ratio": {
                    "type": "number"
                },
                "word_count": {
                    "type": "integer"
                },
                "words_per_minute": {
                    "type": "number"
                }
            }
        },
        "models.Report": {
            "type": "object",
            "properties": {
                "archived_at": {
                    "type": "string"
                },
                "audio": {
                    "$ref": "#/definitions/models.AudioInfo"
                },
                "completed_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "insights": {
                    "$ref": "#/definitions/models.Insights"
                },
                "metrics": {
                    "$ref": "#/definitions/models.Metrics"
                },
                "started_at": {
                    "type": "string"
                },
                "transcript": {
                    "$ref": "#/definitions/models.Transcript"
                },
                "warnings": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "models.ReportSummary": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                }
            }
        },
        "models.Scores": {
            "type": "object",
            "properties": {
                "available": {
                    "type": "boolean"
                },
                "error": {
                    "type": "string"
                },
                "explanation": {
                    "type": "string"
                },
                "values": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        },
        "models.Stage": {
            "type": "object",
            "properties": {
                "end_time": {
                    "type": "number"
                },
                "first_segment": {
                    "type": "integer"
                },
                "last_segment": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "start_time": {
                    "type": "number"
                },
                "text": {
                    "type": "string"
                }
            }
        },
        "models.Transcript": {
            "type": "object",
            "properties": {
                "language": {
                    "type": "string"
                },
                "segments": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/models.TranscriptSegment"
                    }
                },
                "text": {
                    "type": "string"
                }
            }
        },
        "models.TranscriptSegment": {
            "type": "object",
            "properties": {
                "end_time": {
                    "type": "number"
                },
                "speaker": {
                    "type": "string"
                },
                "start_time": {
                    "type": "number"
                },
                "text": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Interview Analyzer API",
	Description:      "Transcribes interview recordings and produces speech metrics and AI feedback on the candidate.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
