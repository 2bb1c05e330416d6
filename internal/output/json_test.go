package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWriteJSON_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult(), false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	// Compact output should be a single line (plus newline from Encode)
	if bytes.Count([]byte(out), []byte("\n")) > 1 {
		t.Errorf("compact output should be single line, got:\n%s", out)
	}

	var decoded SnapshotResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded.Scrollable) != 1 || !decoded.Scrollable[0].VerticalScrollable {
		t.Errorf("scrollable: got %+v", decoded.Scrollable)
	}
}

func TestWriteJSON_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult(), true); err != nil {
		t.Fatal(err)
	}
	if bytes.Count(buf.Bytes(), []byte("\n")) <= 1 {
		t.Errorf("pretty output should be multi-line, got:\n%s", buf.String())
	}
}

func TestWriteJSON_FlattensTreeState(t *testing.T) {
	data, err := json.Marshal(sampleResult())
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["interactive"]; !ok {
		t.Error("interactive should be a top-level key")
	}
	if _, ok := m["TreeState"]; ok {
		t.Error("embedded TreeState should not appear as a key")
	}
}

func TestWriteJSON_NoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]string{"name": "Save & Close <Ctrl+S>"}, false); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Save & Close <Ctrl+S>")) {
		t.Errorf("expected unescaped output, got %s", buf.String())
	}
}
