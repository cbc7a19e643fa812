package entity

// Supplier perfil comercial de un vendedor. Sus datos de contacto alimentan el contexto de preguntas.
type Supplier struct {
	ID          int64
	UserID      int64
	CompanyName string
	ContactName string
	Phone       string
	Email       string
	Address     string
	Description string
}
