package dtos

// WebResponse repräsentiert eine standardisierte Webantwort.
type WebResponse[T any] struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message,omitempty"`
	Data       T               `json:"data"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	RequestID  string          `json:"request_id,omitempty"`
}

// ErrorEnvelope ist die Fehlerantwort, die der Fiber-ErrorHandler schreibt.
type ErrorEnvelope struct {
	Success   bool          `json:"success"`
	Error     ErrorResponse `json:"error"`
	RequestID string        `json:"request_id,omitempty"`
}

// ErrorResponse repräsentiert eine standardisierte Fehlerantwort.
type ErrorResponse struct {
	Message string        `json:"message"`
	Code    string        `json:"code"`
	Details []ErrorDetail `json:"details,omitempty"`
}

type ErrorDetail struct {
	Field   string `json:"field"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type PaginationMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// PageQuery wird von Listen-Endpunkten per QueryParser gefüllt.
type PageQuery struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Clamp begrenzt page/limit serverseitig. maxLimit hängt vom Endpunkt ab.
func (q PageQuery) Clamp(defaultLimit, maxLimit int) (page, limit, offset int) {
	page, limit = q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit, (page - 1) * limit
}

func NewPaginationMeta(page, limit, total int) *PaginationMeta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &PaginationMeta{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Paged bündelt eine Seite mit ihren Metadaten für die Service-Schicht.
type Paged[T any] struct {
	Items      []T
	Pagination *PaginationMeta
}
