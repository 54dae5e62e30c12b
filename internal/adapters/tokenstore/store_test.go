package tokenstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/zoneprofile/internal/adapters/tokenstore"
	. "github.com/smartystreets/goconvey/convey"
)

func exerciseStorage(s tokenstore.Storage) {
	ctx := context.Background()

	Convey("When reading a missing key", func() {
		_, err := s.Get(ctx, tokenstore.TokenKey)
		So(errors.Is(err, tokenstore.ErrNotFound), ShouldBeTrue)
	})

	Convey("When a token is written and read back", func() {
		So(s.Set(ctx, tokenstore.TokenKey, "jwt-1"), ShouldBeNil)
		v, err := s.Get(ctx, tokenstore.TokenKey)

		So(err, ShouldBeNil)
		So(v, ShouldEqual, "jwt-1")
		So(s.Len(ctx), ShouldEqual, 1)

		Convey("And then overwritten", func() {
			So(s.Set(ctx, tokenstore.TokenKey, "jwt-2"), ShouldBeNil)
			v, _ := s.Get(ctx, tokenstore.TokenKey)
			So(v, ShouldEqual, "jwt-2")
		})

		Convey("And then deleted", func() {
			So(s.Delete(ctx, tokenstore.TokenKey), ShouldBeNil)
			_, err := s.Get(ctx, tokenstore.TokenKey)
			So(errors.Is(err, tokenstore.ErrNotFound), ShouldBeTrue)
			So(s.Len(ctx), ShouldEqual, 0)
		})
	})

	Convey("When deleting a missing key", func() {
		So(s.Delete(ctx, "nope"), ShouldBeNil)
	})

	Convey("When writing an empty key", func() {
		So(errors.Is(s.Set(ctx, "", "x"), tokenstore.ErrEmptyKey), ShouldBeTrue)
	})
}

func TestMemory(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		exerciseStorage(tokenstore.NewMemory())
	})
}

func TestFile(t *testing.T) {
	Convey("Given a file store in a fresh directory", t, func() {
		path := filepath.Join(t.TempDir(), "nested", "tokens.yaml")
		s, err := tokenstore.OpenFile(path)
		So(err, ShouldBeNil)
		So(s.Path(), ShouldEqual, path)

		exerciseStorage(s)

		Convey("When a value is written", func() {
			ctx := context.Background()
			So(s.Set(ctx, "session-a/token", "jwt-a"), ShouldBeNil)

			Convey("Then a reopened store sees it", func() {
				again, err := tokenstore.OpenFile(path)
				So(err, ShouldBeNil)
				v, err := again.Get(ctx, "session-a/token")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, "jwt-a")
			})

			Convey("And the file is private", func() {
				info, err := os.Stat(path)
				So(err, ShouldBeNil)
				So(info.Mode().Perm(), ShouldEqual, os.FileMode(0o600))
			})
		})
	})

	Convey("Given a corrupt file", t, func() {
		path := filepath.Join(t.TempDir(), "tokens.yaml")
		So(os.WriteFile(path, []byte("token: [unterminated"), 0o600), ShouldBeNil)

		_, err := tokenstore.OpenFile(path)
		So(errors.Is(err, tokenstore.ErrCorrupt), ShouldBeTrue)
	})

	Convey("Given an empty file", t, func() {
		path := filepath.Join(t.TempDir(), "tokens.yaml")
		So(os.WriteFile(path, nil, 0o600), ShouldBeNil)

		s, err := tokenstore.OpenFile(path)
		So(err, ShouldBeNil)
		So(s.Len(context.Background()), ShouldEqual, 0)
	})
}

func TestScoped(t *testing.T) {
	Convey("Given two scopes over one store", t, func() {
		ctx := context.Background()
		base := tokenstore.NewMemory()
		a := tokenstore.Scoped(base, "a")
		b := tokenstore.Scoped(base, "b")

		exerciseStorage(tokenstore.Scoped(tokenstore.NewMemory(), "x"))

		Convey("When each stores a token", func() {
			So(a.Set(ctx, tokenstore.TokenKey, "ta"), ShouldBeNil)
			So(b.Set(ctx, tokenstore.TokenKey, "tb"), ShouldBeNil)

			Convey("Then they do not see each other", func() {
				va, _ := a.Get(ctx, tokenstore.TokenKey)
				vb, _ := b.Get(ctx, tokenstore.TokenKey)
				So(va, ShouldEqual, "ta")
				So(vb, ShouldEqual, "tb")

				raw, err := base.Get(ctx, "a/token")
				So(err, ShouldBeNil)
				So(raw, ShouldEqual, "ta")
			})
		})
	})
}
