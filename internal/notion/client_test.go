package notion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL, Token: "secret"})
}

func TestQueryAllFollowsCursor(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/databases/db1/query" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != DefaultVersion {
			t.Errorf("notion-version = %q", got)
		}
		var q Query
		_ = json.NewDecoder(r.Body).Decode(&q)
		calls = append(calls, q.StartCursor)

		switch q.StartCursor {
		case "":
			io.WriteString(w, `{"results":[{"id":"a"},{"id":"b"}],"next_cursor":"c2","has_more":true}`)
		case "c2":
			io.WriteString(w, `{"results":[{"id":"c"}],"next_cursor":null,"has_more":false}`)
		default:
			t.Errorf("unexpected cursor %q", q.StartCursor)
		}
	})

	recs, err := QueryAll(context.Background(), c, "db1")
	if err != nil {
		t.Fatalf("QueryAll: %v", err)
	}
	if len(recs) != 3 || recs[2].ID != "c" {
		t.Fatalf("records = %+v", recs)
	}
	if strings.Join(calls, ",") != ",c2" {
		t.Fatalf("cursors = %q", calls)
	}
}

func TestQueryAllPropagatesError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"object":"error","status":401,"code":"unauthorized","message":"API token is invalid."}`)
	})

	_, err := QueryAll(context.Background(), c, "db1")
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("err = %v, want ErrUnexpectedStatus", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "unauthorized" || apiErr.Status != 401 {
		t.Fatalf("api error = %+v", apiErr)
	}
}

func TestDecodeTaggedProperties(t *testing.T) {
	raw := `{"id":"p1","properties":{
		"Name":{"id":"title","type":"title","title":[{"plain_text":"Tune "},{"plain_text":"Amp"}]},
		"Published":{"type":"checkbox","checkbox":false},
		"Price":{"type":"number","number":129.5},
		"Products":{"type":"relation","relation":[{"id":"x"},{"id":"y"}]},
		"Formula":{"type":"formula","formula":{"type":"string","string":"z"}}
	}}`
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p := rec.Properties["Published"]; p.Checkbox == nil || *p.Checkbox {
		t.Errorf("checkbox = %+v", p.Checkbox)
	}
	if p := rec.Properties["Price"]; p.Number == nil || *p.Number != 129.5 {
		t.Errorf("number = %+v", p.Number)
	}
	if p := rec.Properties["Products"]; len(p.Relation) != 2 {
		t.Errorf("relation = %+v", p.Relation)
	}
	if p := rec.Properties["Formula"]; p.Type != "formula" {
		t.Errorf("formula type = %q", p.Type)
	}
}

func TestCreateAndUpdatePage(t *testing.T) {
	var bodies []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		bodies = append(bodies, body)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/pages":
			io.WriteString(w, `{"id":"new-page"}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/pages/kw1":
			io.WriteString(w, `{"id":"kw1"}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})

	ctx := context.Background()
	rec, err := c.CreatePage(ctx, "articles", map[string]PropertyValue{
		"Name":     TitleValue("Tune Amp"),
		"Products": RelationValue([]string{"p1"}),
	})
	if err != nil || rec.ID != "new-page" {
		t.Fatalf("CreatePage = %+v, %v", rec, err)
	}
	if _, err := c.UpdatePage(ctx, "kw1", map[string]PropertyValue{"Used": CheckboxValue(true)}); err != nil {
		t.Fatalf("UpdatePage: %v", err)
	}

	parentVal := bodies[0]["parent"].(map[string]any)
	if parentVal["database_id"] != "articles" {
		t.Errorf("parent = %v", parentVal)
	}
	props := bodies[1]["properties"].(map[string]any)
	used := props["Used"].(map[string]any)
	if used["checkbox"] != true {
		t.Errorf("used = %v", used)
	}
}

func TestRelationValueEmptyStillSerialized(t *testing.T) {
	buf, err := json.Marshal(RelationValue(nil))
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != `{"relation":[]}` {
		t.Fatalf("json = %s", buf)
	}
}

func TestMissingIDs(t *testing.T) {
	c := NewClient(Options{})
	if _, err := c.Query(context.Background(), "", Query{}); !errors.Is(err, ErrMissingID) {
		t.Fatalf("err = %v", err)
	}
}
