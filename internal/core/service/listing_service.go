package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/localtalent/console/internal/core/domain"
	"github.com/localtalent/console/internal/core/ports"
	"github.com/localtalent/console/internal/core/request"
	"github.com/localtalent/console/internal/pkg/validate"
)

const (
	pathService  = "/service"
	pathApproval = "/service/approve-or-reject"
	pathUpload   = "/upload"
)

// CategoryAll disables the category filter of Browse.
const CategoryAll = "all"

type ListingService struct {
	helper *request.Helper
	log    zerolog.Logger
}

var _ ports.ListingService = (*ListingService)(nil)

func NewListingService(helper *request.Helper, log zerolog.Logger) *ListingService {
	return &ListingService{helper: helper, log: log}
}

type listingForm struct {
	Title        string          `json:"title"        validate:"required,min=3,max=100"`
	Description  string          `json:"description"  validate:"required,min=10,max=500"`
	Rate         decimal.Decimal `json:"rate"         validate:"gte=0.01,lte=10000"`
	Availability string          `json:"availability" validate:"required,min=5"`
	Category     string          `json:"category"     validate:"required"`
}

// listingPayload is the body of create and update. Rate is sent as a JSON
// number.
type listingPayload struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Rate         json.Number `json:"rate"`
	Availability string      `json:"availability"`
	Category     string      `json:"category"`
	ImageURL     string      `json:"imageUrl"`
}

type uploadPayload struct {
	FileURL string `json:"fileUrl"`
}

func (s *ListingService) List(ctx context.Context) ([]domain.Listing, bool) {
	return request.Get[[]domain.Listing](ctx, s.helper, pathService, request.Silent()).Get()
}

func (s *ListingService) Get(ctx context.Context, id domain.ID) (*domain.Listing, bool) {
	res := request.Get[domain.Listing](ctx, s.helper, pathService+"/"+id.String())
	if !res.OK() || res.Empty {
		return nil, false
	}
	return &res.Value, true
}

// Browse filters the public catalogue by a title term and a category and
// collects the distinct categories of all listings in first-seen order.
func (s *ListingService) Browse(ctx context.Context, filter ports.BrowseFilter) (*ports.BrowseResult, bool) {
	all, ok := s.List(ctx)
	if !ok {
		return nil, false
	}

	result := &ports.BrowseResult{}
	seen := make(map[string]struct{})
	for _, l := range all {
		if _, dup := seen[l.Category]; !dup {
			seen[l.Category] = struct{}{}
			result.Categories = append(result.Categories, l.Category)
		}
	}

	term := strings.ToLower(strings.TrimSpace(filter.Term))
	for _, l := range all {
		if term != "" && !strings.Contains(strings.ToLower(l.Title), term) {
			continue
		}
		if filter.Category != "" && filter.Category != CategoryAll && l.Category != filter.Category {
			continue
		}
		result.Listings = append(result.Listings, l)
	}
	result.Total = len(result.Listings)
	return result, true
}

func (s *ListingService) Create(ctx context.Context, in ports.ListingInput) (*domain.Listing, error) {
	payload, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.save(request.Post[domain.Listing](ctx, s.helper, pathService, payload))
}

func (s *ListingService) Update(ctx context.Context, id domain.ID, in ports.ListingInput) (*domain.Listing, error) {
	if id.IsZero() {
		return nil, validate.Fail("id", "id is required")
	}
	payload, err := s.prepare(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.save(request.Put[domain.Listing](ctx, s.helper, pathService+"/"+id.String(), payload))
}

func (s *ListingService) Delete(ctx context.Context, id domain.ID) bool {
	return request.Delete[json.RawMessage](ctx, s.helper, pathService+"/"+id.String()).OK()
}

func (s *ListingService) SetApproval(ctx context.Context, id domain.ID, status domain.ApprovalStatus) bool {
	body := map[string]domain.ApprovalStatus{"status": status}
	return request.Put[json.RawMessage](ctx, s.helper, pathApproval+"/"+id.String(), body).OK()
}

// prepare validates the form and uploads the optional image; the uploaded
// file URL replaces any URL given in the form.
func (s *ListingService) prepare(ctx context.Context, in ports.ListingInput) (listingPayload, error) {
	form := listingForm{
		Title:        in.Title,
		Description:  in.Description,
		Rate:         in.Rate,
		Availability: in.Availability,
		Category:     in.Category,
	}
	if err := validate.Struct(form); err != nil {
		return listingPayload{}, err
	}

	imageURL := in.ImageURL
	if in.Image != nil {
		res := request.Upload[uploadPayload](ctx, s.helper, pathUpload, *in.Image, request.Silent())
		data, ok := res.Get()
		if !ok {
			return listingPayload{}, fmt.Errorf("upload %s: %w: %w", in.Image.Filename, domain.ErrRequestFailed, res.Failure)
		}
		if data.FileURL != "" {
			imageURL = data.FileURL
		}
	}

	return listingPayload{
		Title:        in.Title,
		Description:  in.Description,
		Rate:         json.Number(in.Rate.String()),
		Availability: in.Availability,
		Category:     in.Category,
		ImageURL:     imageURL,
	}, nil
}

func (s *ListingService) save(res request.Result[domain.Listing]) (*domain.Listing, error) {
	if !res.OK() {
		return nil, fmt.Errorf("%w: %w", domain.ErrRequestFailed, res.Failure)
	}
	if res.Empty {
		return nil, nil
	}
	s.log.Info().Str("listing_id", res.Value.ID.String()).Msg("listing saved")
	return &res.Value, nil
}
