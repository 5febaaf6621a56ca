package tssession

import (
	"testing"

	"github.com/uber/langsession/src/langsession/entity"
	"go.uber.org/mock/gomock"
)

func TestDocumentMethods(t *testing.T) {
	tests := []methodCase{
		{
			name:   "OpenFile",
			method: MethodOpenFile,
			setReturn: func(f *handlerFixture, result interface{}, err error) {
				f.ctrl.EXPECT().OpenFile(gomock.Any(), "s1", "/projects/app/a.ts", "const x = 1").Return(err)
			},
			params: entity.FileParams{SessionID: "s1", File: "file:///projects/app/a.ts", Content: "const x = 1"},
		},
		{
			name:   "UpdateFile",
			method: MethodUpdateFile,
			setReturn: func(f *handlerFixture, result interface{}, err error) {
				f.ctrl.EXPECT().UpdateFile(gomock.Any(), "s1", "/projects/app/a.ts", "const x = 2").Return(err)
			},
			params: entity.FileParams{SessionID: "s1", File: "/projects/app/./a.ts", Content: "const x = 2"},
		},
		{
			name:   "CloseFile",
			method: MethodCloseFile,
			setReturn: func(f *handlerFixture, result interface{}, err error) {
				f.ctrl.EXPECT().CloseFile(gomock.Any(), "s1", "/projects/app/a.ts").Return(err)
			},
			params: entity.FileParams{SessionID: "s1", File: "/projects/app/a.ts"},
		},
	}

	runMethodCases(t, tests)
}
