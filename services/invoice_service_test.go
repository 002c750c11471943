package services

import (
	"context"
	"fmt"
	"testing"

	"invoiceapi/constants"
	"invoiceapi/dto"
	apperr "invoiceapi/errors"
	"invoiceapi/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func sampleInvoice(date string, items int) dto.CreateInvoiceRequest {
	req := dto.CreateInvoiceRequest{
		InvoiceDate:        dto.Ptr(date),
		CustomerID:         dto.Ptr("CUST-1"),
		DueDate:            dto.Ptr("2024-02-01"),
		GrossDiscount:      dto.Ptr(5.0),
		GrossTotal:         dto.Ptr(120.5),
		TermsAndConditions: dto.Ptr("net 30"),
		InvoiceItems:       []dto.InvoiceItemRequest{},
	}
	for i := 0; i < items; i++ {
		req.InvoiceItems = append(req.InvoiceItems, dto.InvoiceItemRequest{
			ProductServiceType: dto.Ptr("service"),
			Description:        dto.Ptr(fmt.Sprintf("line %d", i+1)),
			UnitPrice:          dto.Ptr(float64(10 * (i + 1))),
			Quantity:           dto.Ptr(i + 1),
			Discount:           dto.Ptr(1.5),
			VatPercentage:      dto.Ptr(20.0),
		})
	}
	return req
}

func TestInvoiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists invoice with items", func(t *testing.T) {
		svc := NewInvoiceService(InvoiceServiceOptions{DB: newTestDB(t)})

		invoice, err := svc.Create(ctx, sampleInvoice("2024-01-01", 3))
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if invoice.ID == 0 {
			t.Fatal("expected invoice id")
		}
		if len(invoice.Items) != 3 {
			t.Fatalf("expected 3 items, got %d", len(invoice.Items))
		}
		for i, item := range invoice.Items {
			if item.InvoiceID != invoice.ID {
				t.Errorf("item %d belongs to invoice %d", i, item.InvoiceID)
			}
			if item.Description != fmt.Sprintf("line %d", i+1) {
				t.Errorf("item %d out of order: %q", i, item.Description)
			}
		}
	})

	t.Run("negative quantity persists nothing", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewInvoiceService(InvoiceServiceOptions{DB: db})

		req := sampleInvoice("2024-01-01", 2)
		req.InvoiceItems[1].Quantity = dto.Ptr(-1)

		_, err := svc.Create(ctx, req)
		if !apperr.HasCode(err, apperr.ErrCodeInvalidAmount) {
			t.Fatalf("expected INVALID_AMOUNT, got %v", err)
		}

		var invoices, items int64
		db.Model(&models.Invoice{}).Count(&invoices)
		db.Model(&models.InvoiceItem{}).Count(&items)
		if invoices != 0 || items != 0 {
			t.Errorf("expected nothing persisted, got %d invoices and %d items", invoices, items)
		}
	})

	t.Run("negative unit price is rejected", func(t *testing.T) {
		svc := NewInvoiceService(InvoiceServiceOptions{DB: newTestDB(t)})

		req := sampleInvoice("2024-01-01", 1)
		req.InvoiceItems[0].UnitPrice = dto.Ptr(-0.01)

		if _, err := svc.Create(ctx, req); !apperr.HasCode(err, apperr.ErrCodeInvalidAmount) {
			t.Fatalf("expected INVALID_AMOUNT, got %v", err)
		}
	})

	t.Run("duplicate invoice date is rejected", func(t *testing.T) {
		svc := NewInvoiceService(InvoiceServiceOptions{DB: newTestDB(t)})

		if _, err := svc.Create(ctx, sampleInvoice("2024-01-01", 1)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		_, err := svc.Create(ctx, sampleInvoice("2024-01-01", 2))
		if !apperr.HasCode(err, apperr.ErrCodeInvoiceExists) {
			t.Fatalf("expected INVOICE_EXISTS, got %v", err)
		}
	})

	t.Run("duplicate date is reported before bad items", func(t *testing.T) {
		svc := NewInvoiceService(InvoiceServiceOptions{DB: newTestDB(t)})

		if _, err := svc.Create(ctx, sampleInvoice("2024-01-01", 1)); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		req := sampleInvoice("2024-01-01", 1)
		req.InvoiceItems[0].Quantity = dto.Ptr(-5)
		if _, err := svc.Create(ctx, req); !apperr.HasCode(err, apperr.ErrCodeInvoiceExists) {
			t.Fatalf("expected INVOICE_EXISTS, got %v", err)
		}
	})
}

func TestInvoiceGetAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewInvoiceService(InvoiceServiceOptions{DB: newTestDB(t)})

	created, err := svc.Create(ctx, sampleInvoice("2024-01-01", 4))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, sampleInvoice("2024-01-02", 0)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("missing id is not found", func(t *testing.T) {
		if _, err := svc.Get(ctx, 9999); !apperr.HasCode(err, apperr.ErrCodeDBNotFound) {
			t.Fatalf("expected DB_NOT_FOUND, got %v", err)
		}
	})

	t.Run("get returns the same items", func(t *testing.T) {
		got, err := svc.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got.Items) != len(created.Items) {
			t.Fatalf("expected %d items, got %d", len(created.Items), len(got.Items))
		}
		for i := range got.Items {
			if got.Items[i] != created.Items[i] {
				t.Errorf("item %d differs: %+v vs %+v", i, got.Items[i], created.Items[i])
			}
		}
	})

	t.Run("list contains every invoice in id order", func(t *testing.T) {
		invoices, err := svc.List(ctx)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(invoices) != 2 {
			t.Fatalf("expected 2 invoices, got %d", len(invoices))
		}
		if invoices[0].ID != created.ID || len(invoices[0].Items) != 4 {
			t.Errorf("unexpected first invoice %+v", invoices[0])
		}
		if len(invoices[1].Items) != 0 {
			t.Errorf("expected second invoice without items, got %d", len(invoices[1].Items))
		}
	})
}

func TestInvoiceListCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	db := newTestDB(t)
	svc := NewInvoiceService(InvoiceServiceOptions{DB: db, Redis: rdb})

	if _, err := svc.Create(ctx, sampleInvoice("2024-01-01", 2)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	gen, err := mr.Get(constants.InvoiceListGenerationKey)
	if err != nil || gen != "1" {
		t.Fatalf("expected generation 1 after create, got %q (%v)", gen, err)
	}

	first, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !mr.Exists(invoiceListKey(1)) {
		t.Fatal("expected list to be cached under the current generation")
	}

	// Rows removed behind the service's back are still served from the cache.
	db.Exec("DELETE FROM invoice_items")
	db.Exec("DELETE FROM invoices")

	cached, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(cached) != len(first) || len(cached[0].Items) != 2 {
		t.Fatalf("expected cached list, got %+v", cached)
	}

	if _, err := svc.Create(ctx, sampleInvoice("2024-01-03", 1)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if gen, _ := mr.Get(constants.InvoiceListGenerationKey); gen != "2" {
		t.Fatalf("expected create to bump the generation, got %q", gen)
	}

	fresh, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(fresh) != 1 || fresh[0].InvoiceDate != "2024-01-03" {
		t.Fatalf("expected only the new invoice, got %+v", fresh)
	}
}

func TestInvoiceListCacheConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	db := newTestDB(t)
	svc := NewInvoiceService(InvoiceServiceOptions{DB: db, Redis: rdb})

	// Commit a create right after the list query reads the table, before
	// List gets to write its result into the cache.
	armed, fired := false, false
	err := db.Callback().Query().After("gorm:query").Register("test:create_during_list", func(tx *gorm.DB) {
		if !armed || fired || tx.Statement.Table != "invoices" {
			return
		}
		fired = true
		if _, err := svc.Create(ctx, sampleInvoice("2024-05-01", 1)); err != nil {
			t.Errorf("Create during list failed: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	armed = true
	during, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !fired {
		t.Fatal("create did not run during list")
	}
	if len(during) != 0 {
		t.Fatalf("expected the list read before the create to be empty, got %d", len(during))
	}

	after, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(after) != 1 || after[0].InvoiceDate != "2024-05-01" {
		t.Fatalf("expected the created invoice after the race, got %+v", after)
	}
}

func TestInvoiceListCacheUnavailable(t *testing.T) {
	ctx := context.Background()
	// nothing listens on port 1
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })

	svc := NewInvoiceService(InvoiceServiceOptions{DB: newTestDB(t), Redis: rdb})
	if _, err := svc.Create(ctx, sampleInvoice("2024-01-01", 1)); err != nil {
		t.Fatalf("Create should not depend on the cache: %v", err)
	}

	invoices, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List should fall back to the db: %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("expected 1 invoice, got %d", len(invoices))
	}
}
