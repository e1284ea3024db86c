package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/badger/internal/adapters/http/api"
	"github.com/okian/badger/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	visitors []types.Visitor
	qr       map[string][]byte
	err      error
	reruns   int
}

func (m *mockDependencies) Visitors(_ context.Context) ([]types.Visitor, error) {
	return m.visitors, m.err
}

func (m *mockDependencies) Page(_ context.Context, page int) (types.Page, error) {
	if m.err != nil {
		return types.Page{}, m.err
	}
	if page < 1 {
		return types.Page{}, fmt.Errorf("%w: %d", types.ErrInvalidPage, page)
	}
	return types.Page{Page: page, PerPage: 25, Total: len(m.visitors), Visitors: m.visitors}, nil
}

func (m *mockDependencies) Visitor(_ context.Context, n int) (types.Visitor, error) {
	if m.err != nil {
		return types.Visitor{}, m.err
	}
	if n < 1 || n > len(m.visitors) {
		return types.Visitor{}, fmt.Errorf("%w: visitor %d", types.ErrNotFound, n)
	}
	return m.visitors[n-1], nil
}

func (m *mockDependencies) Overview(_ context.Context) (types.Overview, error) {
	return types.Overview{
		VisitorsCount:      len(m.visitors),
		MorningBreakouts:   []types.Session{{Name: "S1", Capacity: 1, Remaining: 0}},
		AfternoonBreakouts: []types.Session{{Name: "T1", Capacity: 5, Remaining: 4}},
	}, m.err
}

func (m *mockDependencies) FuzzyReport(_ context.Context) ([]types.Visitor, error) {
	return m.visitors, m.err
}

func (m *mockDependencies) Unlinked(_ context.Context) (types.Unlinked, error) {
	return types.Unlinked{LinkedEmails: []string{"a@b.c"}, Signups: []types.Signup{}}, m.err
}

func (m *mockDependencies) QR(_ context.Context, key string) ([]byte, error) {
	png, ok := m.qr[key]
	if !ok {
		return nil, fmt.Errorf("%w: qr %q", types.ErrNotFound, key)
	}
	return png, nil
}

func (m *mockDependencies) Rerun(_ context.Context) error {
	m.reruns++
	return m.err
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func serve(mux http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func newMux(deps *mockDependencies) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: map[string]interface{}{"runs": 1}})
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestServer_Register(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{
			visitors: []types.Visitor{
				{Position: 1, Email: "jdoe@typo.com", Name: "John", QRKey: "jdoe@typo.com"},
				{Position: 2, Email: "a.lee@co.com", Name: "Ann", QRKey: "a.lee@co.com"},
			},
			qr: map[string][]byte{"jdoe@typo.com": []byte("\x89PNG")},
		}
		mux := newMux(deps)

		Convey("Then health endpoint serves Prometheus metrics", func() {
			w := serve(mux, "GET", "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "badger_breakout_system_goroutine_count")
		})

		Convey("And stats endpoint returns the provider's stats", func() {
			w := serve(mux, "GET", "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"runs":1`)
		})

		Convey("And overview lists sessions", func() {
			w := serve(mux, "GET", "/api/overview")
			So(w.Code, ShouldEqual, http.StatusOK)
			var o types.Overview
			So(json.Unmarshal(w.Body.Bytes(), &o), ShouldBeNil)
			So(o.VisitorsCount, ShouldEqual, 2)
			So(o.AfternoonBreakouts[0].Remaining, ShouldEqual, 4)
		})

		Convey("And visitors are listed", func() {
			w := serve(mux, "GET", "/api/visitors")
			So(w.Code, ShouldEqual, http.StatusOK)
			var vs []types.Visitor
			So(json.Unmarshal(w.Body.Bytes(), &vs), ShouldBeNil)
			So(vs, ShouldHaveLength, 2)
		})

		Convey("And a single visitor is addressed by 1-based position", func() {
			w := serve(mux, "GET", "/api/visitor/2")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "a.lee@co.com")

			So(serve(mux, "GET", "/api/visitor/3").Code, ShouldEqual, http.StatusNotFound)
			So(serve(mux, "GET", "/api/visitor/abc").Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("And badge pages validate the page number", func() {
			So(serve(mux, "GET", "/api/badges/1").Code, ShouldEqual, http.StatusOK)

			w := serve(mux, "GET", "/api/badges/0")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			var e struct{ Code string }
			So(json.Unmarshal(w.Body.Bytes(), &e), ShouldBeNil)
			So(e.Code, ShouldEqual, "bad_request")
		})

		Convey("And reports are served", func() {
			So(serve(mux, "GET", "/api/fuzzy").Code, ShouldEqual, http.StatusOK)
			w := serve(mux, "GET", "/api/unlinked")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, `"unlinked_signups":[]`)
		})

		Convey("And QR images are served as PNG", func() {
			w := serve(mux, "GET", "/qrcodes/jdoe@typo.com.png")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldEqual, "image/png")

			So(serve(mux, "GET", "/qrcodes/nobody.png").Code, ShouldEqual, http.StatusNotFound)
			So(serve(mux, "GET", "/qrcodes/jdoe@typo.com").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And rerun only accepts POST", func() {
			So(serve(mux, "GET", "/api/rerun").Code, ShouldEqual, http.StatusMethodNotAllowed)
			So(serve(mux, "POST", "/api/rerun").Code, ShouldEqual, http.StatusOK)
			So(deps.reruns, ShouldEqual, 1)
		})
	})

	Convey("Given a service that is not started", t, func() {
		mux := newMux(&mockDependencies{err: types.ErrNotStarted})

		Convey("Then readers answer 503", func() {
			So(serve(mux, "GET", "/api/overview").Code, ShouldEqual, http.StatusServiceUnavailable)
			So(serve(mux, "GET", "/api/visitors").Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})

	Convey("Given a failing service", t, func() {
		mux := newMux(&mockDependencies{err: errors.New("boom")})

		Convey("Then readers answer 500 with a JSON body", func() {
			w := serve(mux, "GET", "/api/fuzzy")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "internal_error")
		})
	})

	Convey("Given a nil mux", t, func() {
		server := api.NewServer(&mockDependencies{}, &mockStatsProvider{})
		So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	Convey("Given a handler behind the request id middleware", t, func() {
		var seen string
		h := api.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = api.RequestIDFrom(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}), nil)

		Convey("When no id is sent", func() {
			w := serve(h, "GET", "/")

			Convey("Then a uuid is generated and echoed", func() {
				So(seen, ShouldHaveLength, 36)
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, seen)
			})
		})

		Convey("When the client sends an id", func() {
			req := httptest.NewRequest("GET", "/", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is reused", func() {
				So(seen, ShouldEqual, "abc-123")
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
			})
		})

		Convey("When the client id is oversized", func() {
			req := httptest.NewRequest("GET", "/", http.NoBody)
			req.Header.Set(api.RequestIDHeader, strings.Repeat("x", 500))
			h.ServeHTTP(httptest.NewRecorder(), req)

			Convey("Then it is replaced", func() {
				So(seen, ShouldHaveLength, 36)
			})
		})
	})
}

func TestOpError(t *testing.T) {
	Convey("Given errors built with the op helpers", t, func() {
		cause := errors.New("disk full")

		Convey("Then kinds and causes are both matchable", func() {
			err := api.WrapKind("api.op", api.ErrBadRequest, cause)
			So(errors.Is(err, api.ErrBadRequest), ShouldBeTrue)
			So(errors.Is(err, cause), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.op: bad request: disk full")
		})

		Convey("Then nil causes stay nil", func() {
			So(api.Wrap("api.op", nil), ShouldBeNil)
			So(api.WrapKind("api.op", api.ErrBadRequest, nil), ShouldBeNil)
		})

		Convey("Then NewKind reports the op and kind", func() {
			err := api.NewKind("api.op", api.ErrUnavailable)
			So(err.Error(), ShouldEqual, "api.op: service unavailable")
			var op *api.OpError
			So(errors.As(err, &op), ShouldBeTrue)
			So(op.Op, ShouldEqual, "api.op")
		})
	})
}
