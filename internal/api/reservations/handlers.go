// internal/api/reservations/handlers.go
package reservations

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"

	"github.com/courtline/courtline/internal/db"
	"github.com/courtline/courtline/internal/reservation"
)

const queryTimeout = 5 * time.Second

// maxListLimit bounds a single listing fetch. Clients page in sizes of at
// most 20; anything far beyond that is a malformed request, not a real
// page size.
const maxListLimit = 100

// Response is the uniform envelope every endpoint answers with. Code is a
// service error code, not an HTTP status; Data carries the
// endpoint-specific payload on success.
type Response struct {
	Success bool
	Code    int
	Message string
	Data    any
}

// ListData is the Data payload of a listing fetch.
type ListData struct {
	Count  int
	Result []reservation.Record
}

// Handlers serves the /api/reservations endpoints against a store.
type Handlers struct {
	store *db.DB
	now   func() time.Time
}

func New(store *db.DB) *Handlers {
	return &Handlers{store: store, now: time.Now}
}

// ServeHTTP dispatches on method: POST places, GET lists, DELETE cancels.
func (h *Handlers) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handlePlace(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodDelete:
		h.handleCancel(w, r)
	default:
		writeError(w, errInvalidQuery("method not allowed"))
	}
}

type placeParams struct {
	Reservation reservation.Draft
}

func (h *Handlers) handlePlace(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	params, err := decodeBody[placeParams](r)
	if err != nil {
		writeError(w, err)
		return
	}

	draft := params.Reservation
	if ferr := draft.Validate(h.now()); ferr != nil {
		writeError(w, errMalformedData(ferr.Error()))
		return
	}

	reserveOn, rerr := reservation.ReserveOn(draft, h.now())
	if rerr != nil {
		writeError(w, errMalformedData("invalid date"))
		return
	}

	ctx, cancel := timeoutContext(r)
	defer cancel()

	uid, rerr := h.store.InsertReservation(ctx, draft, reserveOn)
	if rerr != nil {
		logger.Error().Err(rerr).Msg("Failed to insert reservation")
		writeError(w, errInternal("could not store reservation"))
		return
	}

	logger.Info().
		Int64("uid", uid).
		Str("date", draft.Date).
		Int("site", draft.Site).
		Int("priority", draft.Priority).
		Int("preferences", len(draft.Preferences)).
		Str("reserve_on", reserveOn).
		Msg("Reservation placed")
	writeData(w, uid)
}

type listParams struct {
	Page  int
	Limit int
}

func (h *Handlers) handleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	params, err := decodeQuery[listParams](r)
	if err != nil {
		writeError(w, err)
		return
	}
	if params.Page < 0 || params.Limit <= 0 {
		writeError(w, errInvalidQuery("page and limit must be positive"))
		return
	}
	if params.Limit > maxListLimit {
		writeError(w, errInvalidQuery("limit too large"))
		return
	}

	ctx, cancel := timeoutContext(r)
	defer cancel()

	count, records, rerr := h.store.ListReservations(ctx, params.Page, params.Limit)
	if rerr != nil {
		logger.Error().Err(rerr).Msg("Failed to list reservations")
		writeError(w, errInternal("could not list reservations"))
		return
	}
	writeData(w, ListData{Count: count, Result: records})
}

type cancelParams struct {
	Uid int64
}

func (h *Handlers) handleCancel(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	params, err := decodeQuery[cancelParams](r)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx, cancel := timeoutContext(r)
	defer cancel()

	rerr := h.store.CancelPending(ctx, params.Uid)
	if rerr == db.ErrNoMatchingReservation {
		writeError(w, errInvalidQuery("no matching reservation"))
		return
	}
	if rerr != nil {
		logger.Error().Err(rerr).Msg("Failed to cancel reservation")
		writeError(w, errInternal("could not cancel reservation"))
		return
	}

	logger.Info().Int64("uid", params.Uid).Msg("Reservation cancelled")
	writeData(w, nil)
}

// decodeQuery flattens the URL query into a loose map and decodes it into
// T with weak typing, so numeric parameters arrive as strings without
// per-field parsing.
func decodeQuery[T any](r *http.Request) (*T, *apiError) {
	params := make(map[string]any)
	for k, v := range r.URL.Query() {
		if len(v) == 1 {
			params[k] = v[0]
		} else {
			params[k] = v
		}
	}
	return decodeParams[T](params)
}

func decodeBody[T any](r *http.Request) (*T, *apiError) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errInternal(err.Error())
	}
	defer r.Body.Close()

	var params map[string]any
	if err := json.Unmarshal(body, &params); err != nil {
		return nil, errMalformedData("json parse failed")
	}
	return decodeParams[T](params)
}

func decodeParams[T any](params map[string]any) (*T, *apiError) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &out,
		ErrorUnset:       true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errInternal(err.Error())
	}
	if err := decoder.Decode(params); err != nil {
		return nil, errMalformedData("invalid / missing parameters")
	}
	return &out, nil
}
