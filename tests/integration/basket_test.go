//go:build integration

package integration

import (
	"net/http"
	"testing"
)

// The basket lives in the server process, so this is the only test that
// adds to it.
func TestBasketFlow(t *testing.T) {
	resp := doGet(t, "/api/basket")
	empty := decodeJSON[basketResponse](t, resp)
	resp.Body.Close()

	if len(empty.Items) != 0 || empty.Total != 0 {
		t.Fatalf("expected empty basket, got %+v", empty)
	}

	milk := findProduct(t, "Молоко")
	soap := findProduct(t, "Мыло")

	for _, id := range []string{milk.ID, soap.ID, milk.ID} {
		resp := doPost(t, "/api/basket/"+id)
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			t.Fatalf("add %s: expected 200, got %d", id, resp.StatusCode)
		}
		added := decodeJSON[addedResponse](t, resp)
		resp.Body.Close()

		if added.ProductID != id {
			t.Errorf("productId: got %q, want %q", added.ProductID, id)
		}
		if added.Message == "" {
			t.Error("message is empty")
		}
	}

	resp = doGet(t, "/api/basket")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	basket := decodeJSON[basketResponse](t, resp)
	if len(basket.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(basket.Items))
	}
	if basket.Items[0].Product.Name != "Молоко" || basket.Items[0].Quantity != 2 {
		t.Errorf("first line: got %s x%d, want Молоко x2", basket.Items[0].Product.Name, basket.Items[0].Quantity)
	}
	// 2*75 + 30
	if basket.Total != 180 {
		t.Errorf("total: got %v, want 180", basket.Total)
	}
}

func TestBasket_AddUnknown(t *testing.T) {
	resp := doPost(t, "/api/basket/00000000-0000-0000-0000-000000000000")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if body := decodeJSON[errorResponse](t, resp); body.Code != http.StatusNotFound {
		t.Errorf("code: got %d, want 404", body.Code)
	}
}
