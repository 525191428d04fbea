package translation

import (
	"context"
	"sync"

	"github.com/heartmarshall/amistad-translator/internal/provider"
)

var _ provider.Translator = &translatorMock{}

type translatorMock struct {
	NameFunc      func() string
	TranslateFunc func(ctx context.Context, req provider.Request) (string, error)

	calls struct {
		Name      []struct{}
		Translate []struct {
			Ctx context.Context
			Req provider.Request
		}
	}
	lockName      sync.RWMutex
	lockTranslate sync.RWMutex
}

func (mock *translatorMock) Name() string {
	if mock.NameFunc == nil {
		panic("translatorMock.NameFunc: method is nil but Translator.Name was just called")
	}
	mock.lockName.Lock()
	mock.calls.Name = append(mock.calls.Name, struct{}{})
	mock.lockName.Unlock()
	return mock.NameFunc()
}

func (mock *translatorMock) NameCalls() []struct{} {
	mock.lockName.RLock()
	calls := mock.calls.Name
	mock.lockName.RUnlock()
	return calls
}

func (mock *translatorMock) Translate(ctx context.Context, req provider.Request) (string, error) {
	if mock.TranslateFunc == nil {
		panic("translatorMock.TranslateFunc: method is nil but Translator.Translate was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req provider.Request
	}{Ctx: ctx, Req: req}
	mock.lockTranslate.Lock()
	mock.calls.Translate = append(mock.calls.Translate, callInfo)
	mock.lockTranslate.Unlock()
	return mock.TranslateFunc(ctx, req)
}

func (mock *translatorMock) TranslateCalls() []struct {
	Ctx context.Context
	Req provider.Request
} {
	mock.lockTranslate.RLock()
	calls := mock.calls.Translate
	mock.lockTranslate.RUnlock()
	return calls
}
