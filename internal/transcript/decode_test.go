package transcript

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeRequestContract(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(`{"transcript":"ich lerne","wordTimings":[{"start":0,"end":0.4},{"start":0.5,"end":1.2}],"audioByteLength":32000}`))
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}
	if req.Transcript != "ich lerne" {
		t.Fatalf("unexpected transcript %q", req.Transcript)
	}
	if len(req.WordTimings) != 2 || req.WordTimings[1].End != 1.2 {
		t.Fatalf("unexpected timings: %+v", req.WordTimings)
	}
	if req.AudioByteLength == nil || *req.AudioByteLength != 32000 {
		t.Fatalf("unexpected audio length: %v", req.AudioByteLength)
	}
}

func TestDecodeRequestTimedTranscription(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(`{"text":"Guten Tag","words":[{"word":"Guten","start":0.1,"end":0.5},{"word":"Tag","start":0.6,"end":0.9}]}`))
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}
	if req.Transcript != "Guten Tag" {
		t.Fatalf("unexpected transcript %q", req.Transcript)
	}
	if len(req.WordTimings) != 2 || req.WordTimings[0].Start != 0.1 {
		t.Fatalf("unexpected timings: %+v", req.WordTimings)
	}
}

func TestDecodeRequestWordsOnly(t *testing.T) {
	req, err := DecodeRequest(strings.NewReader(`{"words":[{"word":"Guten","start":0,"end":0.4},{"word":"Abend","start":0.5,"end":1}]}`))
	if err != nil {
		t.Fatalf("DecodeRequest failed: %v", err)
	}
	if req.Transcript != "Guten Abend" {
		t.Fatalf("unexpected transcript %q", req.Transcript)
	}
}

func TestDecodeRequestMissingTranscript(t *testing.T) {
	_, err := DecodeRequest(strings.NewReader(`{"audioByteLength":100}`))
	if !errors.Is(err, ErrMissingTranscript) {
		t.Fatalf("expected ErrMissingTranscript, got %v", err)
	}
}

func TestDecodeRequestMalformed(t *testing.T) {
	if _, err := DecodeRequest(strings.NewReader(`{"transcript":`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestRequestFromText(t *testing.T) {
	req, err := RequestFromText([]byte("Das ist gut\n"))
	if err != nil {
		t.Fatalf("RequestFromText failed: %v", err)
	}
	if req.Transcript != "Das ist gut\n" || req.WordTimings != nil {
		t.Fatalf("unexpected request: %+v", req)
	}
	req, err = RequestFromText([]byte(` {"transcript":"ja"}`))
	if err != nil {
		t.Fatalf("RequestFromText failed: %v", err)
	}
	if req.Transcript != "ja" {
		t.Fatalf("expected JSON decode, got %+v", req)
	}
}
