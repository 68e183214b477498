package repository

// Phrase is one row of GET /frases and GET /frases/:id, carrying the name
// of the linked character when there is one.
type Phrase struct {
	ID              int64   `db:"id" json:"id"`
	Texto           string  `db:"texto" json:"texto"`
	MarcaTiempo     *string `db:"marca_tiempo" json:"marca_tiempo"`
	Descripcion     *string `db:"descripcion" json:"descripcion"`
	PersonajeNombre *string `db:"personaje_nombre" json:"personaje_nombre"`
}

// PhraseSummary is one row of the by-character and by-chapter listings.
type PhraseSummary struct {
	ID          int64   `db:"id" json:"id"`
	Texto       string  `db:"texto" json:"texto"`
	MarcaTiempo *string `db:"marca_tiempo" json:"marca_tiempo"`
	Descripcion *string `db:"descripcion" json:"descripcion"`
}

// PhraseValues are the columns written by insert and update. A nil
// pointer is stored as NULL.
type PhraseValues struct {
	Texto        string
	MarcaTiempo  *string
	Descripcion  *string
	PersonajesID *int64
}

// Record is a row of a table whose columns this service does not manage.
type Record map[string]any
