// file: internals/helpers/storage/upload.go
package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	bucketAttachments = "attachments"
	maxImageWidth     = 1600
	webpQuality       = 80
)

// UploadResult adalah hasil upload yang siap disimpan sebagai attachment registrasi.
type UploadResult struct {
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
	Size     int64  `json:"size"`
}

// UploadAttachment mengunggah berkas lampiran registrasi. Berkas gambar
// dikompres dulu ke WebP; selain itu diunggah apa adanya.
func UploadAttachment(folder string, fileHeader *multipart.FileHeader) (*UploadResult, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("gagal membuka file: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return nil, fmt.Errorf("gagal membaca isi file: %w", err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	filename := fileHeader.Filename

	if strings.HasPrefix(contentType, "image/") && contentType != "image/webp" {
		if converted, err := convertToWebP(buf.Bytes()); err == nil {
			buf = converted
			contentType = "image/webp"
			filename = replaceExt(filename, ".webp")
		}
		// kalau decode gagal, upload apa adanya
	}

	objectName := generateUniqueFilename(folder, filename)
	if err := uploadToSupabase(bucketAttachments, objectName, contentType, buf); err != nil {
		return nil, err
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		os.Getenv("SUPABASE_PROJECT_URL"),
		bucketAttachments,
		url.PathEscape(objectName),
	)

	return &UploadResult{
		FileName: fileHeader.Filename,
		FileURL:  publicURL,
		Size:     int64(buf.Len()),
	}, nil
}

// convertToWebP men-decode gambar, resize kalau terlalu besar, lalu encode ke WebP.
func convertToWebP(data []byte) (*bytes.Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gagal decode gambar: %w", err)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	out := new(bytes.Buffer)
	if err := webp.Encode(out, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("gagal encode webp: %w", err)
	}
	return out, nil
}

func uploadToSupabase(bucket, filename, contentType string, data *bytes.Buffer) error {
	supabaseURL := os.Getenv("SUPABASE_PROJECT_URL")
	supabaseKey := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_PROJECT_URL atau SUPABASE_SERVICE_ROLE_KEY belum diset")
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", supabaseURL, bucket, filename)

	req, err := http.NewRequest(http.MethodPut, endpoint, data)
	if err != nil {
		return fmt.Errorf("gagal membuat request upload: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("gagal mengirim request upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("upload gagal status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// ✅ Hapus file dari storage (dipakai saat attachment dilepas dari registrasi)
func DeleteAttachment(fileURL string) error {
	bucket, path, err := extractStoragePath(fileURL)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s",
		os.Getenv("SUPABASE_PROJECT_URL"), bucket, path)

	req, err := http.NewRequest(http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete gagal status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func extractStoragePath(fullURL string) (bucket string, path string, err error) {
	u, err := url.Parse(fullURL)
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(u.Path, "/object/public/", 2)
	if len(parts) < 2 {
		return "", "", fmt.Errorf("url bukan Supabase public object")
	}
	pathParts := strings.SplitN(parts[1], "/", 2)
	if len(pathParts) < 2 {
		return "", "", fmt.Errorf("gagal ekstrak bucket dan path")
	}
	return pathParts[0], pathParts[1], nil
}

// ✅ Buat nama unik
func sanitizeFilename(filename string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	return re.ReplaceAllString(filename, "_")
}

func generateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}

func replaceExt(filename, newExt string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[:i] + newExt
	}
	return filename + newExt
}
