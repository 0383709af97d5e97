package repository

import (
	"context"
	"database/sql"

	"github.com/gebrayel/ecommerce-simulator/models"
)

type CreditCardRepository struct {
	db *sql.DB
}

func NewCreditCardRepository(db *sql.DB) *CreditCardRepository {
	return &CreditCardRepository{db: db}
}

func (r *CreditCardRepository) Create(ctx context.Context, card *models.CreditCard) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO credit_cards (user_id, card_number_hash, last_four_digits, expiry_month, expiry_year, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		card.UserID, card.CardNumberHash, card.LastFourDigits,
		card.ExpiryMonth, card.ExpiryYear, card.CreatedAt,
	).Scan(&card.ID)
}

// AttachToken stores the minted token id and signature on an already
// persisted card.
func (r *CreditCardRepository) AttachToken(ctx context.Context, card *models.CreditCard) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE credit_cards SET token_id = $1, token_signature = $2 WHERE id = $3`,
		card.TokenID, card.TokenSignature, card.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *CreditCardRepository) FindByUserID(ctx context.Context, userID int64) ([]models.CreditCard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, card_number_hash, last_four_digits, expiry_month, expiry_year, token_id, token_signature, created_at
		 FROM credit_cards WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.CreditCard
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

func (r *CreditCardRepository) FindByCardIDAndTokenID(ctx context.Context, cardID int64, tokenID string) (*models.CreditCard, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, card_number_hash, last_four_digits, expiry_month, expiry_year, token_id, token_signature, created_at
		 FROM credit_cards WHERE id = $1 AND token_id = $2`, cardID, tokenID)
	return scanCard(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*models.CreditCard, error) {
	var card models.CreditCard
	var tokenID, tokenSignature sql.NullString
	err := row.Scan(&card.ID, &card.UserID, &card.CardNumberHash, &card.LastFourDigits,
		&card.ExpiryMonth, &card.ExpiryYear, &tokenID, &tokenSignature, &card.CreatedAt)
	if err != nil {
		return nil, err
	}
	card.TokenID = tokenID.String
	card.TokenSignature = tokenSignature.String
	return &card, nil
}
