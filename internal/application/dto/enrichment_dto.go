package dto

import "github.com/google/uuid"

// EnrichResponse resultado de regenerar descripciones y sugerencias de un producto.
type EnrichResponse struct {
	ProductID         int64                     `json:"product_id"`
	GenerationID      uuid.UUID                 `json:"generation_id"`
	DescriptionEN     string                    `json:"ai_description_en"`
	DescriptionZH     string                    `json:"ai_description_zh"`
	Provider          string                    `json:"provider"`
	Model             string                    `json:"model,omitempty"`
	FailedGenerations int                       `json:"failed_generations"`
	Price             PriceSuggestionResponse   `json:"price_suggestion"`
	Logistics         LogisticsEstimateResponse `json:"logistics_estimate"`
}

// QuestionRequest pregunta de un comprador sobre un producto.
type QuestionRequest struct {
	Question string `json:"question" validate:"required,max=300"`
}

// AnswerResponse respuesta generada para el comprador.
type AnswerResponse struct {
	ProductID int64  `json:"product_id"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}
