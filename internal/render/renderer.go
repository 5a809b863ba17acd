package render

import "context"

type Renderer interface {
	RenderArticle(ctx context.Context, page ArticlePage) ([]byte, error)
	RenderList(ctx context.Context, page ListPage) ([]byte, error)
	RenderHome(ctx context.Context, page HomePage) ([]byte, error)
	RenderLegal(ctx context.Context, page LegalPage) ([]byte, error)
	RenderNotFound(ctx context.Context, page NotFoundPage) ([]byte, error)
}

var _ Renderer = (*ShellRenderer)(nil)
