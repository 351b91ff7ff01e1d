package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Vovarama1992/kz_voice/internal/domain"
)

// maxDownloadBytes — потолок Bot API на скачивание файлов
const maxDownloadBytes = 20 * 1024 * 1024

type fileDownloader struct {
	client  *http.Client
	timeout time.Duration
}

func newFileDownloader(client *http.Client, timeout time.Duration) *fileDownloader {
	return &fileDownloader{client: client, timeout: timeout}
}

// download — байты вложения. Ссылка содержит токен бота, в логи её не пишем.
func (rt *Router) download(ctx context.Context, fileID string) ([]byte, error) {
	link, err := rt.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, domain.UpstreamError(domain.StageDownload, "resolve file", stripURL(err))
	}
	data, err := rt.files.fetch(ctx, link)
	if err != nil {
		return nil, domain.UpstreamError(domain.StageDownload, "download file", err)
	}
	return data, nil
}

func (d *fileDownloader) fetch(ctx context.Context, link string) ([]byte, error) {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, stripURL(err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, stripURL(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("telegram file: larger than %d bytes", maxDownloadBytes)
	}
	return data, nil
}

// stripURL убирает адрес из *url.Error: в нём токен бота
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s request: %w", ue.Op, ue.Err)
	}
	return err
}
