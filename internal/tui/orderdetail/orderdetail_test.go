// ABOUTME: Tests for the order detail view
// ABOUTME: Covers the loading, loaded and empty section renderings

package orderdetail

import (
	"strings"
	"testing"
	"time"

	"github.com/igvshop/igv-admin/internal/client"
	"github.com/igvshop/igv-admin/internal/listing"
	"github.com/igvshop/igv-admin/internal/tui/icons"
)

func TestView_Loading(t *testing.T) {
	d := New(12, 80, 24)
	view := d.View()
	if !strings.Contains(view, "Order #12") || !strings.Contains(view, "Loading order") {
		t.Errorf("unexpected loading view:\n%s", view)
	}
	if strings.Contains(view, "QR sessions") {
		t.Error("expected no sections before the lookups finish")
	}
}

func TestView_Loaded(t *testing.T) {
	d := New(12, 100, 24)
	d.SetData(&listing.OrderView{
		Order: &client.Order{
			ID:          12,
			Code:        "OD-12",
			TotalAmount: "150000.00",
			Status:      "paid",
			UserName:    "Lan",
			UserEmail:   "lan@example.com",
		},
		Sessions: []client.QRSession{{
			ID:            1,
			BankCode:      "VCB",
			AccountNumber: "0011",
			Amount:        "150000",
			ExpiredAt:     time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
			Status:        "paid",
		}},
		Lines: []client.OrderDetail{{
			ID:          3,
			Quantity:    2,
			Price:       "75000",
			ProductCode: "NF-1",
			ProductName: "Netflix 1 month",
		}},
	})

	view := d.View()
	for _, want := range []string{"OD-12", "Paid", "lan@example.com", icons.QR.String() + " QR sessions", "VCB", "Netflix 1 month", "2x"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestView_EmptySections(t *testing.T) {
	d := New(3, 80, 24)
	d.SetData(&listing.OrderView{Order: &client.Order{ID: 3, Status: "pending"}})
	view := d.View()
	if !strings.Contains(view, "No QR sessions") || !strings.Contains(view, "No items") {
		t.Errorf("expected empty section hints:\n%s", view)
	}
}
