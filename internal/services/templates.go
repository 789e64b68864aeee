package services

import (
	"fmt"

	"github.com/ncortesv/tienda-backend/internal/models"
)

// BuildCustomerSections turns registered customers into a single
// list-message section, ready for MessageSender.SendList. Row descriptions
// carry the phone when present.
func BuildCustomerSections(customers []*models.Customer) []ListSection {
	rows := make([]ListRow, 0, len(customers))
	for i, customer := range customers {
		row := ListRow{
			ID:    customer.ID,
			Title: customer.Name,
		}
		if row.ID == "" {
			row.ID = fmt.Sprintf("%d", i+1)
		}
		if customer.Phone != "" {
			row.Description = customer.Phone
		}
		rows = append(rows, row)
	}

	return []ListSection{{Title: "Clientes", Rows: rows}}
}
