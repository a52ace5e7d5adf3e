package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MikeOwino/hydrogen/internal/shared/apperr"
)

// Store persists carts.
type Store interface {
	Create(ctx context.Context, lines []LineInput) (Cart, error)
	AddLines(ctx context.Context, cartID string, lines []LineInput) error
	Get(ctx context.Context, cartID string) (Cart, error)
}

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Create(ctx context.Context, lines []LineInput) (Cart, error) {
	c := Cart{ID: uuid.NewString(), Status: StatusOpen}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		return upsertLines(tx, c.ID, lines)
	})
	if err != nil {
		return Cart{}, mapWriteErr(err)
	}
	return c, nil
}

// AddLines merges lines into the cart; a variant already in the cart has its
// quantity increased.
func (r *Repo) AddLines(ctx context.Context, cartID string, lines []LineInput) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Cart{}).
			Where("id = ? AND status = ?", cartID, StatusOpen).
			Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP(3)"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFoundErr("Cart not found.")
		}
		return upsertLines(tx, cartID, lines)
	})
	return mapWriteErr(err)
}

func (r *Repo) Get(ctx context.Context, cartID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc, id asc") }).
		First(&c, "id = ?", cartID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Cart{}, apperr.NotFoundErr("Cart not found.")
	}
	if err != nil {
		return Cart{}, apperr.Wrap(err)
	}
	return c, nil
}

func upsertLines(tx *gorm.DB, cartID string, lines []LineInput) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([]Line, 0, len(lines))
	for _, in := range lines {
		if in.MerchandiseID == "" {
			return apperr.InvalidErr("Choose a variant first.", map[string]string{"variant_id": "required"})
		}
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}
		var attrs []byte
		if len(in.Attributes) > 0 {
			b, err := json.Marshal(in.Attributes)
			if err != nil {
				return err
			}
			attrs = b
		}
		rows = append(rows, Line{
			ID:         uuid.NewString(),
			CartID:     cartID,
			VariantID:  in.MerchandiseID,
			Quantity:   qty,
			Attributes: attrs,
		})
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("quantity + VALUES(quantity)"),
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP(3)"),
		}),
	}).Create(&rows).Error
}

// mysql: 1452 = foreign key parent row missing (unknown variant or cart)
const errNoReferencedRow = 1452

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == errNoReferencedRow {
		return apperr.NotFoundErr("This product is no longer available.")
	}
	return apperr.Wrap(err)
}
