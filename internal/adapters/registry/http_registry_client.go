package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"ngo-directory-service/internal/domain"
	"ngo-directory-service/internal/platform/httpx"
	"ngo-directory-service/internal/platform/obs"
)

// HTTPRegistryClient talks to the registry HTTP API:
//
//	GET  /ngos       full snapshot
//	GET  /ngos/{id}  single record
//	POST /ngos       create, id assigned by the registry
//
// Reads are retried on transient failures. Creation is sent exactly once
// because it is not idempotent.
type HTTPRegistryClient struct {
	client *httpx.Client
}

func NewHTTPRegistryClient(baseURL string, timeout time.Duration, opts ...httpx.Option) (*HTTPRegistryClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("registry base url is empty")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("registry base url %q: %w", baseURL, err)
	}

	return &HTTPRegistryClient{client: httpx.New(baseURL, timeout, opts...)}, nil
}

func unavailable(cause error, format string, a ...any) error {
	return domain.WrapErrorf(cause, domain.ErrRegistryUnavailable, format, a...)
}

// ListNgos fetches the complete snapshot. Records that are malformed (no id,
// out-of-range coordinates) are skipped with a warning instead of failing the
// whole listing.
func (h *HTTPRegistryClient) ListNgos(ctx context.Context) (_ []domain.NgoRecord, err error) {
	defer obs.Time(ctx, "registry.ListNgos")(&err)

	endpoint := h.client.URL("/ngos")

	resp, err := h.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return h.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, unavailable(err, "could not load NGOs, try again")
	}
	defer resp.Body.Close()

	var decoded []ngoPayload
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, unavailable(fmt.Errorf("decode ngo list: %w", err), "could not load NGOs, try again")
	}

	out := make([]domain.NgoRecord, 0, len(decoded))
	for _, p := range decoded {
		rec, err := p.toRecord()
		if err != nil {
			log.Warn().Err(err).Msg("skipping malformed registry record")
			continue
		}
		out = append(out, rec)
	}

	return out, nil
}

func (h *HTTPRegistryClient) GetNgo(ctx context.Context, id string) (_ domain.NgoRecord, err error) {
	defer obs.Time(ctx, "registry.GetNgo")(&err)

	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NgoRecord{}, domain.WrapErrorf(nil, domain.ErrValidationRejected, "ngo id is required")
	}

	endpoint := h.client.URL("/ngos/" + url.PathEscape(id))

	resp, err := h.client.DoWithRetry(ctx, func() (*http.Request, error) {
		return h.client.NewRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		if httpx.StatusCode(err) == http.StatusNotFound {
			return domain.NgoRecord{}, domain.WrapErrorf(err, domain.ErrNgoNotFound, "NGO %s was not found", id)
		}
		return domain.NgoRecord{}, unavailable(err, "could not load NGO details, try again")
	}
	defer resp.Body.Close()

	var decoded ngoPayload
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.NgoRecord{}, unavailable(fmt.Errorf("decode ngo: %w", err), "could not load NGO details, try again")
	}

	rec, err := decoded.toRecord()
	if err != nil {
		return domain.NgoRecord{}, unavailable(err, "registry returned an invalid NGO")
	}

	return rec, nil
}

// SubmitNgo creates an NGO. A non-success response is ValidationRejected;
// a transport failure is RegistryUnavailable.
func (h *HTTPRegistryClient) SubmitNgo(ctx context.Context, ngo domain.NewNgo) (_ domain.NgoRecord, err error) {
	defer obs.Time(ctx, "registry.SubmitNgo")(&err)

	if err := ngo.Validate(); err != nil {
		return domain.NgoRecord{}, err
	}

	payload, err := json.Marshal(toCreatePayload(ngo))
	if err != nil {
		return domain.NgoRecord{}, fmt.Errorf("marshal ngo: %w", err)
	}

	req, err := h.client.NewRequest(ctx, http.MethodPost, h.client.URL("/ngos"), bytes.NewReader(payload))
	if err != nil {
		return domain.NgoRecord{}, unavailable(err, "could not reach the registry, try again")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		var he *httpx.StatusError
		if errors.As(err, &he) {
			return domain.NgoRecord{}, domain.WrapErrorf(err, domain.ErrValidationRejected, "the registry rejected the NGO (status %d)", he.Code)
		}
		return domain.NgoRecord{}, unavailable(err, "could not reach the registry, try again")
	}
	defer resp.Body.Close()

	var created ngoPayload
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return domain.NgoRecord{}, unavailable(fmt.Errorf("decode created ngo: %w", err), "registry returned an unreadable response")
	}

	rec, err := created.toRecord()
	if err != nil {
		return domain.NgoRecord{}, unavailable(err, "registry returned an invalid NGO")
	}

	return rec, nil
}
