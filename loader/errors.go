package loader

import (
	"errors"
	"fmt"
)

var (
	ErrFetcherRequired = errors.New("loader: fetcher required")
	ErrUnpublished     = errors.New("post is not published")
	ErrDuplicateSlug   = errors.New("duplicate slug")
	ErrSourceTooLarge  = errors.New("source exceeds size limit")
)

// SourceFetchError 는 단일 소스를 가져오지 못했을 때의 오류다. (타임아웃 포함)
// LoadAll 은 이 오류를 로그로 남기고 해당 소스만 건너뛴다.
type SourceFetchError struct {
	Address string
	Err     error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fetch source %s: %v", e.Address, e.Err)
}

func (e *SourceFetchError) Unwrap() error { return e.Err }

// SourceParseError 는 front matter 가 없거나 스키마에 맞지 않는 소스의 오류다.
type SourceParseError struct {
	Address string
	Err     error
}

func (e *SourceParseError) Error() string {
	return fmt.Sprintf("parse source %s: %v", e.Address, e.Err)
}

func (e *SourceParseError) Unwrap() error { return e.Err }
