package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"invoiceapi/constants"
	"invoiceapi/dto"
	apperr "invoiceapi/errors"
	"invoiceapi/models"
	"invoiceapi/services/logger"
	"invoiceapi/validator"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type InvoiceService struct {
	db       *gorm.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

type InvoiceServiceOptions struct {
	DB *gorm.DB
	// Redis có thể nil, khi đó cache bị tắt
	Redis    *redis.Client
	CacheTTL time.Duration
	Logger   logger.Logger
}

func NewInvoiceService(opts InvoiceServiceOptions) *InvoiceService {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &InvoiceService{
		db:       opts.DB,
		redis:    opts.Redis,
		cacheTTL: ttl,
		logger:   log,
	}
}

// Create persists an invoice and its items in one transaction. The date and
// the items are checked before anything is written.
func (s *InvoiceService) Create(ctx context.Context, req dto.CreateInvoiceRequest) (models.Invoice, error) {
	taken, err := s.dateTaken(ctx, dto.Value(req.InvoiceDate))
	if err != nil {
		return models.Invoice{}, err
	}
	if taken {
		return models.Invoice{}, duplicateInvoiceDate(nil)
	}

	if err := validator.ValidateInvoiceItems(req.InvoiceItems); err != nil {
		return models.Invoice{}, err
	}

	invoice := req.ToModel()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&invoice).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Invoice{}, duplicateInvoiceDate(err)
		}
		return models.Invoice{}, apperr.NewAppError(apperr.ErrCodeDBError, "Failed to create invoice", err)
	}

	s.invalidateList(ctx)
	s.logger.Info("created invoice id=%d items=%d", invoice.ID, len(invoice.Items))

	return s.Get(ctx, invoice.ID)
}

func duplicateInvoiceDate(err error) error {
	return apperr.NewAppError(apperr.ErrCodeInvoiceExists, "Invoice with the same date already exists", err)
}

func (s *InvoiceService) dateTaken(ctx context.Context, date string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Invoice{}).Where("invoice_date = ?", date).Count(&count).Error; err != nil {
		return false, apperr.NewAppError(apperr.ErrCodeDBError, "Failed to query invoices", err)
	}
	return count > 0, nil
}

// List returns every invoice with its items ordered by id.
//
// Cached lists are keyed by the generation current before the db read. Create
// bumps the generation after commit, so a list read before a concurrent create
// lands under a key no later reader uses.
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice

	cacheKey := ""
	if s.redis != nil {
		gen, err := s.listGeneration(ctx)
		if err != nil {
			s.logger.Error("read invoice cache generation: %v", err)
		} else {
			cacheKey = invoiceListKey(gen)
			found, err := GetFromRedis(ctx, s.redis, cacheKey, &invoices)
			if err != nil {
				s.logger.Error("read invoice cache: %v", err)
			} else if found {
				return invoices, nil
			}
		}
	}

	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, apperr.NewAppError(apperr.ErrCodeDBError, "Failed to list invoices", err)
	}

	if cacheKey != "" {
		if err := SetToRedis(ctx, s.redis, cacheKey, invoices, s.cacheTTL); err != nil {
			s.logger.Error("write invoice cache: %v", err)
		}
	}
	return invoices, nil
}

// Get trả về invoice theo id kèm các dòng hàng
func (s *InvoiceService) Get(ctx context.Context, id uint) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Invoice{}, apperr.NewAppError(apperr.ErrCodeDBNotFound, "Invoice not found", apperr.ErrInvoiceNotFound)
		}
		return models.Invoice{}, apperr.NewAppError(apperr.ErrCodeDBError, "Failed to get invoice", err)
	}
	return invoice, nil
}

func invoiceListKey(gen int64) string {
	return fmt.Sprintf("%s:%d", constants.InvoiceListCacheKey, gen)
}

func (s *InvoiceService) listGeneration(ctx context.Context) (int64, error) {
	gen, err := s.redis.Get(ctx, constants.InvoiceListGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// invalidateList chuyển sang generation mới, các list đã cache hết hiệu lực
func (s *InvoiceService) invalidateList(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Incr(ctx, constants.InvoiceListGenerationKey).Err(); err != nil {
		s.logger.Error("invalidate invoice cache: %v", err)
	}
}
