package handler

import "github.com/softsolution/lending-api/internal/core/domain"

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// messageResponse is returned by operations that have nothing else to report.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type dataResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
}

// listResponse is the envelope of every paged collection.
type listResponse[T any] struct {
	Success    bool  `json:"success"`
	Count      int   `json:"count"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
	Data       []T   `json:"data"`
}

func messageOK(msg string) messageResponse {
	return messageResponse{Success: true, Message: msg}
}

func withData[T any](v T, msg string) dataResponse[T] {
	return dataResponse[T]{Success: true, Message: msg, Data: v}
}

func paged[T any](p domain.Page[T]) listResponse[T] {
	return listResponse[T]{
		Success:    true,
		Count:      len(p.Items),
		Total:      p.Total,
		Page:       p.Page,
		TotalPages: p.TotalPages,
		Data:       p.Items,
	}
}
