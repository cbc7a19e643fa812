package enrichment

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/agromarket-api/internal/domain"
	"github.com/jhoicas/agromarket-api/internal/domain/entity"
)

// Límites de la pregunta del comprador y del contexto enviado al modelo.
const (
	MaxQuestionRunes = 300
	MaxContextRunes  = 3500
)

// AnswerQuestion responde una pregunta sobre un producto activo. No escribe nada.
// Errores: domain.ErrNotFound (inexistente o inactivo), domain.ErrInvalidInput (pregunta vacía o larga).
func (o *Orchestrator) AnswerQuestion(ctx context.Context, productID int64, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("pregunta vacía: %w", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(question) > MaxQuestionRunes {
		return "", fmt.Errorf("pregunta de más de %d caracteres: %w", MaxQuestionRunes, domain.ErrInvalidInput)
	}

	p, err := o.stores.Products.GetByID(ctx, productID)
	if err != nil {
		return "", err
	}
	if p == nil || !p.IsActive {
		return "", fmt.Errorf("producto %d: %w", productID, domain.ErrNotFound)
	}

	productContext, err := o.ProductContext(ctx, p)
	if err != nil {
		return "", err
	}
	return o.newClient().AnswerQuestion(ctx, question, productContext).String(), nil
}

// ProductContext arma el bloque de texto con los datos del producto, su proveedor y la
// última estimación logística, recortado a MaxContextRunes.
func (o *Orchestrator) ProductContext(ctx context.Context, p *entity.Product) (string, error) {
	var b strings.Builder
	unit := p.UnitOrDefault()
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	fmt.Fprintf(&b, "Price: %s per %s\n", p.BasePrice.StringFixed(2), unit)
	fmt.Fprintf(&b, "Unit: %s\n", unit)
	fmt.Fprintf(&b, "Stock: %d\n", p.Stock)
	fmt.Fprintf(&b, "Category: %s\n", p.Category)
	writeField(&b, "Description (EN)", p.DescriptionEN)
	writeField(&b, "Description (ZH)", p.DescriptionZH)

	if o.stores.Suppliers != nil && p.SupplierID != 0 {
		s, err := o.stores.Suppliers.GetByID(ctx, p.SupplierID)
		if err != nil {
			return "", err
		}
		if s != nil {
			writeField(&b, "Supplier", s.CompanyName)
			writeField(&b, "Contact", s.ContactName)
			writeField(&b, "Phone", s.Phone)
			writeField(&b, "Email", s.Email)
			writeField(&b, "Address", s.Address)
		}
	}

	l, err := o.stores.Suggestions.LatestLogisticsEstimate(ctx, p.ID)
	if err != nil {
		return "", err
	}
	if l != nil {
		carrier := l.Carrier
		if carrier == "" {
			carrier = "unspecified carrier"
		}
		fmt.Fprintf(&b, "Logistics: %s via %s, about %d days, shipping cost %s\n",
			l.Region, carrier, l.EstimatedDays, l.CostEstimate.StringFixed(2))
	}

	return truncateRunes(strings.TrimSpace(b.String()), MaxContextRunes), nil
}

func writeField(b *strings.Builder, label, value string) {
	if value = strings.TrimSpace(value); value != "" {
		fmt.Fprintf(b, "%s: %s\n", label, value)
	}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
