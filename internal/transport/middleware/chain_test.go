package middleware

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func tagging(order *[]string, name string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*order = append(*order, name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestChain_FirstIsOutermost(t *testing.T) {
	var order []string
	h := Chain(tagging(&order, "recovery"), tagging(&order, "auth"), tagging(&order, "metrics"))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "mux")
		}),
	)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/content/library", nil))

	want := []string{"recovery", "auth", "metrics", "mux"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestChain_SkipsNil(t *testing.T) {
	var order []string
	var disabled Middleware

	h := Chain(disabled, tagging(&order, "cors"), nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "mux")
			w.WriteHeader(http.StatusAccepted)
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}
	if !reflect.DeepEqual(order, []string{"cors", "mux"}) {
		t.Errorf("order = %v", order)
	}
}
