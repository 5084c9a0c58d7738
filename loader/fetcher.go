package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"

	"tech-blog/httpclient"
)

// maxSourceBytes 는 한 소스에서 읽을 최대 바이트 수다.
const maxSourceBytes = 4 << 20

// Fetcher retrieves the raw text of one content source.
type Fetcher interface {
	Fetch(ctx context.Context, address string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, address string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, address string) ([]byte, error) {
	return f(ctx, address)
}

// FSFetcher reads sources from a file system rooted at the content root.
type FSFetcher struct {
	FS fs.FS
}

func NewFSFetcher(fsys fs.FS) *FSFetcher {
	return &FSFetcher{FS: fsys}
}

func (f *FSFetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(f.FS, strings.TrimLeft(address, "/"))
}

// HTTPFetcher 는 baseURL 하위의 정적 리소스를 HTTP GET 으로 가져온다.
// 예) baseURL=https://blog.example.com/content/posts, address=react/hooks.mdx
type HTTPFetcher struct {
	client *httpclient.BaseClient
}

func NewHTTPFetcher(client *httpclient.BaseClient) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, address string) ([]byte, error) {
	req, err := f.client.NewRequest(ctx, http.MethodGet, address, nil, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodySample, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodySample))
	}

	// 한도보다 1바이트 더 읽어 잘린 본문을 그대로 파싱하지 않도록 한다.
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxSourceBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSourceTooLarge, maxSourceBytes)
	}
	return data, nil
}
