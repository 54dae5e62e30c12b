package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

const graphqlResponse = `{"data":{"user":[{"login":"ada","firstName":"Ada","lastName":"Lovelace",
"totalUp":1230000,"totalDown":1000000,"auditRatio":1.23,"transactions":[{"amount":21}],
"totalXp":{"aggregate":{"sum":{"amount":48000}}}}],"skills":[{"type":"skill_go","amount":50}]}}`

func fakePlatform() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /signin", func(w http.ResponseWriter, r *http.Request) {
		if _, pass, _ := r.BasicAuth(); pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`"tok-1"`))
	})
	mux.HandleFunc("POST /graphql", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(graphqlResponse))
	})
	return httptest.NewServer(mux)
}

// execute runs the root command with args and returns its stdout.
func execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProfilectl(t *testing.T) {
	convey.Convey("Given a fake platform and a token file", t, func() {
		srv := fakePlatform()
		defer srv.Close()

		_ = os.Setenv("ZONEPROFILE_AUTH_URL", srv.URL+"/signin")
		_ = os.Setenv("ZONEPROFILE_GRAPHQL_URL", srv.URL+"/graphql")
		defer func() {
			_ = os.Unsetenv("ZONEPROFILE_AUTH_URL")
			_ = os.Unsetenv("ZONEPROFILE_GRAPHQL_URL")
		}()

		dir := t.TempDir()
		tokenFile := filepath.Join(dir, "tokens.yaml")

		convey.Convey("When logging in", func() {
			out, err := execute("login", "--token-file", tokenFile, "-u", "ada", "-p", "secret")

			convey.Convey("Then the user is greeted and the token file exists", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Signed in as Ada Lovelace")
				data, err := os.ReadFile(tokenFile)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, "tok-1")
			})

			convey.Convey("And a snapshot can be taken", func() {
				html := filepath.Join(dir, "profile.html")
				out, err := execute("snapshot", "--token-file", tokenFile, "--out", html)
				convey.So(err, convey.ShouldBeNil)
				convey.So(strings.TrimSpace(out), convey.ShouldEqual, html)
				body, err := os.ReadFile(html)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(body), convey.ShouldContainSubstring, "48KB")
			})

			convey.Convey("And logout clears the token", func() {
				_, err := execute("logout", "--token-file", tokenFile)
				convey.So(err, convey.ShouldBeNil)
				data, err := os.ReadFile(tokenFile)
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldNotContainSubstring, "tok-1")
			})
		})

		convey.Convey("When logging in with a wrong password", func() {
			_, err := execute("login", "--token-file", tokenFile, "-u", "ada", "-p", "nope")

			convey.Convey("Then the command fails with the message", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "Invalid credentials")
			})
		})

		convey.Convey("When taking a snapshot without logging in", func() {
			_, err := execute("snapshot", "--token-file", tokenFile, "--out", filepath.Join(dir, "x.html"))

			convey.Convey("Then the command fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "not signed in")
			})
		})
	})

	convey.Convey("Given the version command", t, func() {
		out, err := execute("version")

		convey.Convey("Then it prints the build version", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldStartWith, "profilectl dev")
		})
	})
}
