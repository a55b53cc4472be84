package pubchem

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), Options{BaseURL: srv.URL}, nil)
}

func TestFetchExtractsProperties(t *testing.T) {
	t.Parallel()

	var gotPath, gotAgent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"PropertyTable":{"Properties":[{"CID":126941,"MolecularWeight":"454.4","IsomericSMILES":"CN(CC1=CN=C2C(=N1)C(=NC(=N2)N)N)C3=CC=C(C=C3)C(=O)NC(CCC(=O)O)C(=O)O"}]}}`))
	})

	props, err := client.Fetch(context.Background(), "Methotrexate")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if gotPath != "/compound/name/Methotrexate/property/MolecularWeight,IsomericSMILES/JSON" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotAgent != DefaultUserAgent {
		t.Fatalf("unexpected user agent: %s", gotAgent)
	}
	if !props.Found() || !strings.HasPrefix(*props.SMILES, "CN(CC1") {
		t.Fatalf("unexpected smiles: %v", props.SMILES)
	}
	if props.MolecularWeight == nil || *props.MolecularWeight != 454.4 {
		t.Fatalf("unexpected weight: %v", props.MolecularWeight)
	}
}

func TestFetchEscapesName(t *testing.T) {
	t.Parallel()

	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"PropertyTable":{"Properties":[{"MolecularWeight":441.4,"SMILES":"C1=CC=CC=C1"}]}}`))
	})

	props, err := client.Fetch(context.Background(), "Folic Acid")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.Contains(gotPath, "/Folic%20Acid/") {
		t.Fatalf("name was not escaped: %s", gotPath)
	}
	if props.MolecularWeight == nil || *props.MolecularWeight != 441.4 {
		t.Fatalf("numeric weight not decoded: %v", props.MolecularWeight)
	}
}

func TestExtractFieldOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
		want string
		none bool
	}{
		{name: "isomeric wins", body: `{"PropertyTable":{"Properties":[{"IsomericSMILES":"C[C@H](N)C(=O)O","CanonicalSMILES":"CC(N)C(=O)O","SMILES":"X"}]}}`, want: "C[C@H](N)C(=O)O"},
		{name: "canonical fallback", body: `{"PropertyTable":{"Properties":[{"CanonicalSMILES":"CC(N)C(=O)O","SMILES":"X"}]}}`, want: "CC(N)C(=O)O"},
		{name: "plain fallback", body: `{"PropertyTable":{"Properties":[{"IsomericSMILES":"","SMILES":"CCO"}]}}`, want: "CCO"},
		{name: "no encoding", body: `{"PropertyTable":{"Properties":[{"MolecularWeight":"18.015"}]}}`, none: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			props, err := client.Fetch(context.Background(), "x")
			if err != nil {
				t.Fatalf("Fetch returned error: %v", err)
			}
			if tc.none {
				if props.Found() {
					t.Fatalf("expected no smiles, got %s", *props.SMILES)
				}
				return
			}
			if !props.Found() || *props.SMILES != tc.want {
				t.Fatalf("expected %s, got %v", tc.want, props.SMILES)
			}
		})
	}
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()

	t.Run("status", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"Fault":{"Code":"PUGREST.NotFound"}}`, http.StatusNotFound)
		})
		_, err := client.Fetch(context.Background(), "Unobtainium")
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
			t.Fatalf("expected StatusError 404, got %v", err)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"PropertyTable":{"Properties":[]}}`))
		})
		if _, err := client.Fetch(context.Background(), "x"); !errors.Is(err, ErrNoProperties) {
			t.Fatalf("expected ErrNoProperties, got %v", err)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		})
		if _, err := client.Fetch(context.Background(), "x"); err == nil {
			t.Fatalf("expected decode error")
		}
	})

	t.Run("bad weight", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"PropertyTable":{"Properties":[{"MolecularWeight":"heavy","SMILES":"C"}]}}`))
		})
		if _, err := client.Fetch(context.Background(), "x"); err == nil {
			t.Fatalf("expected weight parse error")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		t.Cleanup(srv.Close)

		client := NewClient(nil, Options{BaseURL: srv.URL, Timeout: 20 * time.Millisecond}, nil)
		if _, err := client.Fetch(context.Background(), "x"); err == nil {
			t.Fatalf("expected timeout error")
		}
	})
}
