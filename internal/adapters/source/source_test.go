package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/badger/internal/adapters/source"
	. "github.com/smartystreets/goconvey/convey"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoader_Visitors(t *testing.T) {
	Convey("Given a loader", t, func() {
		ctx := context.Background()
		l := source.NewLoader()

		Convey("When the visitors CSV is well formed", func() {
			p := writeFile(t, "visitors.csv", "name,email,company\nAnn Lee,A.Lee@co.com,ACME\nBo Kim,b.kim@co.com,\n")
			vs, err := l.Visitors(ctx, p)

			Convey("Then visitors keep file order and raw emails", func() {
				So(err, ShouldBeNil)
				So(len(vs), ShouldEqual, 2)
				So(vs[0].Email, ShouldEqual, "A.Lee@co.com")
				So(vs[0].Name, ShouldEqual, "Ann Lee")
				So(vs[0].Position, ShouldEqual, 1)
				So(vs[1].Position, ShouldEqual, 2)
				So(vs[1].ExactMatch, ShouldBeFalse)
			})
		})

		Convey("When rows are missing an email or a name", func() {
			p := writeFile(t, "visitors.csv", "email,name\n,NoMail\nx@y.z,\nok@y.z,Fine\n")
			vs, err := l.Visitors(ctx, p)

			Convey("Then every malformed row is reported", func() {
				So(vs, ShouldBeNil)
				So(errors.Is(err, source.ErrInvalidRecord), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "line 2: missing email")
				So(err.Error(), ShouldContainSubstring, "line 3: missing name")

				var re *source.RecordError
				So(errors.As(err, &re), ShouldBeTrue)
				So(re.Line, ShouldEqual, 2)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := l.Visitors(ctx, filepath.Join(t.TempDir(), "missing.csv"))
			So(errors.Is(err, source.ErrRead), ShouldBeTrue)
		})
	})
}

func TestLoader_Signups(t *testing.T) {
	Convey("Given a loader", t, func() {
		ctx := context.Background()
		l := source.NewLoader()

		Convey("When the signups CSV has no header", func() {
			p := writeFile(t, "breakout.csv",
				"2023-05-01, J.Doe@Corp.com ,M-A,A-A,\n"+
					"2023-05-02,mary@corp.com,M-B,A-B,\n"+
					"2023-05-03,j.doe@corp.com,M-C,A-C,\n")
			set, err := l.Signups(ctx, p)

			Convey("Then keys are canonical and keep first-seen order", func() {
				So(err, ShouldBeNil)
				So(set.Keys(), ShouldResemble, []string{"j.doe@corp.com", "mary@corp.com"})
			})

			Convey("And later duplicates win on values", func() {
				s, ok := set.Get("j.doe@corp.com")
				So(ok, ShouldBeTrue)
				So(s.Morning, ShouldEqual, "M-C")
				So(s.Afternoon, ShouldEqual, "A-C")
				So(s.Date, ShouldEqual, "2023-05-03")
			})
		})

		Convey("When a row has no email", func() {
			p := writeFile(t, "breakout.csv", "2023-05-01,,M,A,\n")
			_, err := l.Signups(ctx, p)
			So(errors.Is(err, source.ErrInvalidRecord), ShouldBeTrue)
		})

		Convey("When a row carries an extra trailing column", func() {
			p := writeFile(t, "breakout.csv", "2023-05-01,a@x.com,M1,A1,,extra\n")
			set, err := l.Signups(ctx, p)

			Convey("Then decoding fails instead of panicking", func() {
				So(set, ShouldBeNil)
				So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, p)
			})
		})

		Convey("When a row is missing columns", func() {
			p := writeFile(t, "breakout.csv", "2023-05-01,a@x.com,M1,A1,\n2023-05-02,b@x.com,M2\n")
			_, err := l.Signups(ctx, p)
			So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		})
	})
}

func TestLoader_Aliases(t *testing.T) {
	Convey("Given a loader", t, func() {
		ctx := context.Background()
		l := source.NewLoader()

		Convey("When the alias document is valid", func() {
			p := writeFile(t, "email_mapping.yaml", "email_mapping:\n  jdoe@typo.com: j.doe@corp.com\n  m@x.com: mary@corp.com\n")
			aliases, err := l.Aliases(ctx, p)

			Convey("Then the mapping is returned", func() {
				So(err, ShouldBeNil)
				So(aliases, ShouldResemble, map[string]string{
					"jdoe@typo.com": "j.doe@corp.com",
					"m@x.com":       "mary@corp.com",
				})
			})
		})

		Convey("When the document lacks email_mapping", func() {
			p := writeFile(t, "email_mapping.yaml", "other: 1\n")
			_, err := l.Aliases(ctx, p)
			So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		})

		Convey("When the document is not YAML", func() {
			p := writeFile(t, "email_mapping.yaml", "email_mapping: [unclosed\n")
			_, err := l.Aliases(ctx, p)
			So(errors.Is(err, source.ErrDecode), ShouldBeTrue)
		})

		Convey("When no location is configured", func() {
			aliases, err := l.Aliases(ctx, "")
			So(err, ShouldBeNil)
			So(aliases, ShouldBeEmpty)
		})
	})
}
