package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

type blobStub struct {
	created   []string
	granted   []string
	createErr map[string]error
	grantErr  map[string]error
}

func (b *blobStub) Create(ctx context.Context, name string, reader io.Reader) (string, error) {
	if err := b.createErr[name]; err != nil {
		return "", err
	}
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	b.created = append(b.created, name)
	return "evidence/" + name, nil
}

func (b *blobStub) GrantPublicRead(ctx context.Context, id string) error {
	if err := b.grantErr[id]; err != nil {
		return err
	}
	b.granted = append(b.granted, id)
	return nil
}

func (b *blobStub) ThumbnailURL(id string) string {
	return "https://res.example.com/c_limit,w_400/" + id
}

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Disposition": {"form-data; name=\"photos\"; filename=\"" + filename + "\""},
		"Content-Type":        {"application/octet-stream"},
	})
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	writer.Close()

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(int64(len(content) + 1024))
	require.NoError(t, err)
	files := form.File["photos"]
	require.Len(t, files, 1)
	return files[0]
}

func photoBatch(t *testing.T, names ...string) EvidenceBatch {
	t.Helper()
	files := make([]*multipart.FileHeader, 0, len(names))
	for _, name := range names {
		files = append(files, buildFileHeader(t, name, pngHeader))
	}
	return EvidenceBatch{DeclaredDate: "2024-05-01", ClassLabel: "101", Files: files}
}

func TestEvidenceServiceDeterministicNames(t *testing.T) {
	storage := &blobStub{}
	svc := NewEvidenceService(storage, 10, testLogger())

	result := svc.UploadBatch(context.Background(), photoBatch(t, "front.png", "back.png", "bin.png"))
	require.Empty(t, result.Failed)
	require.Len(t, result.Uploaded, 3)
	require.Equal(t, "2024-05-01_101_00.png", result.Uploaded[0].FileName)
	require.Equal(t, "2024-05-01_101_01.png", result.Uploaded[1].FileName)
	require.Equal(t, "2024-05-01_101_02.png", result.Uploaded[2].FileName)
}

func TestEvidenceServiceOversizedFileSkippedBatchContinues(t *testing.T) {
	storage := &blobStub{}
	svc := NewEvidenceService(storage, 1, testLogger())

	big := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 2*1024*1024)...)
	batch := EvidenceBatch{
		DeclaredDate: "2024-05-01",
		ClassLabel:   "101",
		Files: []*multipart.FileHeader{
			buildFileHeader(t, "ok1.png", pngHeader),
			buildFileHeader(t, "huge.png", big),
			buildFileHeader(t, "ok2.png", pngHeader),
		},
	}

	result := svc.UploadBatch(context.Background(), batch)
	require.Len(t, result.Uploaded, 2)
	require.Len(t, result.Failed, 1)
	require.Equal(t, 1, result.Failed[0].Index)
	// Surviving files keep their original batch positions in the names.
	require.Equal(t, "2024-05-01_101_00.png", result.Uploaded[0].FileName)
	require.Equal(t, "2024-05-01_101_02.png", result.Uploaded[1].FileName)
}

func TestEvidenceServiceRejectsNonImage(t *testing.T) {
	storage := &blobStub{}
	svc := NewEvidenceService(storage, 10, testLogger())

	batch := EvidenceBatch{
		DeclaredDate: "2024-05-01",
		ClassLabel:   "101",
		Files:        []*multipart.FileHeader{buildFileHeader(t, "notes.txt", []byte("plain text, not a photo"))},
	}

	result := svc.UploadBatch(context.Background(), batch)
	require.Empty(t, result.Uploaded)
	require.Len(t, result.Failed, 1)
	require.Empty(t, storage.created)
}

func TestEvidenceServiceGrantFailureIsNotFatal(t *testing.T) {
	storage := &blobStub{grantErr: map[string]error{
		"evidence/2024-05-01_101_00.png": errors.New("permission api down"),
	}}
	svc := NewEvidenceService(storage, 10, testLogger())

	result := svc.UploadBatch(context.Background(), photoBatch(t, "front.png"))
	require.Len(t, result.Uploaded, 1)
	require.Empty(t, result.Failed)
	require.True(t, result.Uploaded[0].Unlisted)
	require.NotEmpty(t, result.Uploaded[0].URL)
}

func TestEvidenceServiceCreateFailureAbortsFileOnly(t *testing.T) {
	storage := &blobStub{createErr: map[string]error{
		"2024-05-01_101_01.png": fmt.Errorf("blob store rejected the write"),
	}}
	svc := NewEvidenceService(storage, 10, testLogger())

	result := svc.UploadBatch(context.Background(), photoBatch(t, "a.png", "b.png", "c.png"))
	require.Len(t, result.Uploaded, 2)
	require.Len(t, result.Failed, 1)
	require.Equal(t, 1, result.Failed[0].Index)
}
