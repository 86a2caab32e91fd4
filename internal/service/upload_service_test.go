package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/suplidoraindustrial6s-lab/caritas-app/config"
)

// minimal PNG header, enough for content sniffing
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func setupTestUpload(t *testing.T, maxSize int64) (UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	return NewUploadService(&config.UploadConfig{Dir: dir, MaxSize: maxSize}, zap.NewNop()), dir
}

func TestUploadService_SavePhoto(t *testing.T) {
	svc, dir := setupTestUpload(t, 1<<20)

	resp, err := svc.SavePhoto(context.Background(), bytes.NewReader(pngHeader), int64(len(pngHeader)))
	if err != nil {
		t.Fatalf("SavePhoto failed: %v", err)
	}
	if resp.ContentType != "image/png" {
		t.Errorf("expected image/png, got %s", resp.ContentType)
	}
	if !strings.HasPrefix(resp.URL, "/images/beneficiaries/") || !strings.HasSuffix(resp.URL, ".png") {
		t.Errorf("unexpected url %s", resp.URL)
	}

	stored := filepath.Join(dir, strings.TrimPrefix(resp.URL, ImagesPrefix))
	data, err := os.ReadFile(stored)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if !bytes.Equal(data, pngHeader) {
		t.Error("stored bytes differ from the upload")
	}

	path, contentType, err := svc.Open(context.Background(), strings.TrimPrefix(resp.URL, ImagesPrefix))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if path != stored && filepath.Clean(path) != filepath.Clean(stored) {
		t.Errorf("expected %s, got %s", stored, path)
	}
	if contentType != "image/png" {
		t.Errorf("expected image/png, got %s", contentType)
	}
}

func TestUploadService_SavePhoto_Rejects(t *testing.T) {
	svc, _ := setupTestUpload(t, 16)
	ctx := context.Background()

	if _, err := svc.SavePhoto(ctx, bytes.NewReader(pngHeader), int64(len(pngHeader))); !errors.Is(err, ErrUploadTooLarge) {
		t.Errorf("expected ErrUploadTooLarge, got %v", err)
	}
	// declared size lies, the body is still capped
	if _, err := svc.SavePhoto(ctx, bytes.NewReader(pngHeader), 0); !errors.Is(err, ErrUploadTooLarge) {
		t.Errorf("expected ErrUploadTooLarge for oversized body, got %v", err)
	}
	if _, err := svc.SavePhoto(ctx, strings.NewReader("hola"), 4); !errors.Is(err, ErrUploadUnsupportedType) {
		t.Errorf("expected ErrUploadUnsupportedType, got %v", err)
	}
	if _, err := svc.SavePhoto(ctx, strings.NewReader(""), 0); !errors.Is(err, ErrUploadEmpty) {
		t.Errorf("expected ErrUploadEmpty, got %v", err)
	}
}

func TestUploadService_Open_Traversal(t *testing.T) {
	svc, _ := setupTestUpload(t, 1<<20)

	if _, _, err := svc.Open(context.Background(), "../../etc/passwd"); !errors.Is(err, ErrUploadForbidden) {
		t.Errorf("expected ErrUploadForbidden, got %v", err)
	}
	if _, _, err := svc.Open(context.Background(), "beneficiaries/missing.png"); !errors.Is(err, ErrUploadNotFound) {
		t.Errorf("expected ErrUploadNotFound, got %v", err)
	}
}
