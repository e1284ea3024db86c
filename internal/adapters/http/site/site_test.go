package site

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/badger/internal/domain/assign"
	"github.com/okian/badger/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeReader struct {
	visitors []types.Visitor
	err      error
}

func (f *fakeReader) Overview(_ context.Context) (types.Overview, error) {
	return types.Overview{
		VisitorsCount:         len(f.visitors),
		VisitorsBreakoutCount: 1,
		MorningBreakouts:      []types.Session{{Name: "Thinking OPs", Capacity: 20, Remaining: 18}},
		AfternoonBreakouts:    []types.Session{{Name: "Roundtable", Capacity: 3, Remaining: 0}},
	}, f.err
}

func (f *fakeReader) Visitors(_ context.Context) ([]types.Visitor, error) { return f.visitors, f.err }

func (f *fakeReader) Page(_ context.Context, page int) (types.Page, error) {
	if page < 1 {
		return types.Page{}, fmt.Errorf("%w: %d", types.ErrInvalidPage, page)
	}
	return types.Page{Page: page, Visitors: f.visitors}, f.err
}

func (f *fakeReader) Visitor(_ context.Context, n int) (types.Visitor, error) {
	if n < 1 || n > len(f.visitors) {
		return types.Visitor{}, fmt.Errorf("%w: visitor %d", types.ErrNotFound, n)
	}
	return f.visitors[n-1], f.err
}

func (f *fakeReader) FuzzyReport(_ context.Context) ([]types.Visitor, error) { return f.visitors, f.err }

func (f *fakeReader) Unlinked(_ context.Context) (types.Unlinked, error) {
	return types.Unlinked{
		LinkedEmails: []string{"j.doe@corp.com"},
		Signups:      []types.Signup{{Email: "ghost@corp.com", Date: "2024-05-02", Morning: "M", Afternoon: "A"}},
	}, f.err
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, http.NoBody)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestSiteHandler(t *testing.T) {
	Convey("Given a registered site", t, func() {
		reader := &fakeReader{visitors: []types.Visitor{
			{Position: 1, Name: "John <Doe>", Email: "jdoe@typo.com", MorningBreakout: "Thinking OPs",
				AfternoonBreakout: "Roundtable", ExactMatch: true, QRKey: "jdoe@typo.com", FuzzyEmailScore: 100},
			{Position: 2, Name: "Bo Kim", Email: "b.kim@co.com", MorningBreakout: assign.NoSpotsAvailable,
				AfternoonBreakout: "Roundtable", FuzzyEmailScore: 33.333},
		}}
		mux := http.NewServeMux()
		So(Register(context.Background(), mux, reader), ShouldBeNil)

		Convey("Then the overview shows counts and sessions", func() {
			w := get(mux, "/")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
			body := w.Body.String()
			So(body, ShouldContainSubstring, `<span id="visitors-count">2</span>`)
			So(body, ShouldContainSubstring, "Morning breakouts")
			So(body, ShouldContainSubstring, "Roundtable")
		})

		Convey("And badges render names escaped, the sentinel plainly and QR links", func() {
			body := get(mux, "/all_badges").Body.String()
			So(body, ShouldContainSubstring, "John &lt;Doe&gt;")
			So(body, ShouldContainSubstring, assign.NoSpotsAvailable)
			So(body, ShouldContainSubstring, "/qrcodes/jdoe@typo.com.png")
		})

		Convey("And badge pages and single visitors resolve", func() {
			So(get(mux, "/badge/1").Code, ShouldEqual, http.StatusOK)
			So(get(mux, "/badge/0").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/badge/x").Code, ShouldEqual, http.StatusBadRequest)
			So(get(mux, "/visitor/2").Body.String(), ShouldContainSubstring, "b.kim@co.com")
			So(get(mux, "/visitor/9").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("And the report pages render", func() {
			So(get(mux, "/empty_badge").Code, ShouldEqual, http.StatusOK)
			So(get(mux, "/visitors_list").Body.String(), ShouldContainSubstring, `href="/visitor/2"`)
			So(get(mux, "/fuzzy_email").Body.String(), ShouldContainSubstring, "33.33")
			So(get(mux, "/unlinked_breakouts").Body.String(), ShouldContainSubstring, "ghost@corp.com")
		})

		Convey("And the stylesheet is served", func() {
			w := get(mux, "/static/style.css")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/css")
		})

		Convey("And unknown paths are not found", func() {
			So(get(mux, "/some-asset").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a service that is not started", t, func() {
		mux := http.NewServeMux()
		So(Register(context.Background(), mux, &fakeReader{err: types.ErrNotStarted}), ShouldBeNil)

		Convey("Then pages answer 503", func() {
			So(get(mux, "/").Code, ShouldEqual, http.StatusServiceUnavailable)
		})
	})
}

func TestNewHandler(t *testing.T) {
	Convey("Given the embedded templates", t, func() {
		h, err := NewHandler(&fakeReader{})

		Convey("Then every page parses", func() {
			So(err, ShouldBeNil)
			So(h.templates, ShouldHaveLength, len(pages))
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then registering should panic", func() {
			So(func() {
				_ = Register(context.Background(), nil, &fakeReader{})
			}, ShouldPanic)
		})
	})
}
