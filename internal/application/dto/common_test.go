package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/dto"
)

func TestDefaultPage_AcotaLimitYOffset(t *testing.T) {
	cases := []struct {
		name     string
		in, want dto.PageRequest
	}{
		{"vacío usa 20", dto.PageRequest{}, dto.PageRequest{Limit: 20}},
		{"negativos", dto.PageRequest{Limit: -5, Offset: -1}, dto.PageRequest{Limit: 20}},
		{"tope 100", dto.PageRequest{Limit: 500, Offset: 40}, dto.PageRequest{Limit: 100, Offset: 40}},
		{"dentro de rango", dto.PageRequest{Limit: 1, Offset: 0}, dto.PageRequest{Limit: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.DefaultPage()
			assert.Equal(t, tc.want, p)
		})
	}
}
