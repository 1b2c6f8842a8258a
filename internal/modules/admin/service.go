package admin

import (
	"context"

	"eventrent/internal/domain"
	"eventrent/internal/pkg/clock"
	"eventrent/internal/pkg/jwt"
	"eventrent/internal/repository"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	packs      PackRepository
	janitor    HoldJanitor
	jwtService *jwt.Service
	clock      clock.Clock

	// tokenHash is the bcrypt hash of the operator bootstrap token.
	// Empty hash means the token exchange is switched off.
	tokenHash string
	tokenTTL  int64
}

func NewService(packs PackRepository, janitor HoldJanitor, jwtService *jwt.Service, clk clock.Clock, tokenHash string, tokenTTLSeconds int64) *Service {
	return &Service{
		packs:      packs,
		janitor:    janitor,
		jwtService: jwtService,
		clock:      clk,
		tokenHash:  tokenHash,
		tokenTTL:   tokenTTLSeconds,
	}
}

// IssueToken exchanges the shared bootstrap token for a short-lived admin
// JWT. The token itself never appears in config, only its bcrypt hash.
func (s *Service) IssueToken(ctx context.Context, req IssueTokenRequest) (*IssueTokenResponse, error) {
	if s.tokenHash == "" {
		return nil, ErrLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.tokenHash), []byte(req.BootstrapToken)); err != nil {
		return nil, ErrInvalidToken
	}

	subject := req.Subject
	if subject == "" {
		subject = "operator"
	}
	token, err := s.jwtService.GenerateToken(subject, jwt.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &IssueTokenResponse{Token: token, ExpiresIn: s.tokenTTL}, nil
}

func (s *Service) CreatePack(ctx context.Context, req CreatePackRequest) (*domain.Pack, error) {
	base, err := decimal.NewFromString(req.BasePrice)
	if err != nil || base.IsNegative() {
		return nil, ErrValidation
	}
	extraDay := decimal.Zero
	if req.ExtraDayPrice != "" {
		extraDay, err = decimal.NewFromString(req.ExtraDayPrice)
		if err != nil || extraDay.IsNegative() {
			return nil, ErrValidation
		}
	}

	p := &domain.Pack{
		Key:           domain.PackKey(req.Key),
		Name:          req.Name,
		BasePrice:     base,
		IncludedDays:  req.IncludedDays,
		ExtraDayPrice: extraDay,
		TotalQuantity: req.TotalQuantity,
	}
	for _, it := range req.DefaultItems {
		p.DefaultItems = append(p.DefaultItems, domain.PackItem{Label: it.Label, Quantity: it.Quantity})
	}
	for _, it := range req.Catalog {
		unit, err := decimal.NewFromString(it.UnitPrice)
		if err != nil || unit.IsNegative() {
			return nil, ErrValidation
		}
		p.Catalog = append(p.Catalog, domain.CatalogItem{Label: it.Label, UnitPrice: unit})
	}

	if err := s.packs.Create(ctx, p); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicatePack
		}
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPacks(ctx context.Context) ([]domain.Pack, error) {
	return s.packs.List(ctx)
}

// CleanupHolds flips lapsed holds to expired and reports how many changed.
func (s *Service) CleanupHolds(ctx context.Context) (int64, error) {
	return s.janitor.MarkExpired(ctx, s.clock.Now())
}
