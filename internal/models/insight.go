package models

type AskAIRequest struct {
	Question string `json:"question" validate:"required,max=1000"`
}

type AskAIResponse struct {
	Answer string `json:"answer"`
}
