package domain

import (
	"io"
	"time"
)

// Attachment - файл, прикладываемый к multipart-запросу
type Attachment struct {
	Name        string
	ContentType string
	Content     io.Reader
}

// FormField - поле формы; порядок полей сохраняется при отправке
type FormField struct {
	Name  string
	Value string
}

// Proposal - предложение нового объекта наследия
type Proposal struct {
	Fields []FormField
	Images []Attachment
}

// ContactMessage - сообщение в поддержку
type ContactMessage struct {
	Email       string
	Subject     string
	Message     string
	Attachments []Attachment
}

// Proposal review states
const (
	ProposalPending  = "pendiente"
	ProposalApproved = "aprobada"
	ProposalRejected = "rechazada"
)

type ProposalRecord struct {
	ID           int64     `json:"id"`
	Name         string    `json:"denominacion"`
	Country      string    `json:"pais"`
	Municipality string    `json:"municipio,omitempty"`
	Status       string    `json:"estado"`
	AdminNotes   string    `json:"notas_admin,omitempty"`
	MonumentID   *int64    `json:"bien_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ProposalPage struct {
	Items []ProposalRecord `json:"items"`
	Page  int              `json:"page"`
	Pages int              `json:"pages"`
	Total int              `json:"total"`
}
