package formatx

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/scholarhub/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", FormatDate(time.Time{}))
	assert.Equal(t, "01 Mei 2024", FormatDate(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "31 Desember 1999", FormatDate(time.Date(1999, 12, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "17 Agustus 1945", FormatDate(time.Date(1945, 8, 17, 0, 0, 0, 0, time.UTC)))
}

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "-", FormatDateTime(time.Time{}))
	assert.Equal(t, "02 Januari 2006 pukul 15.04", FormatDateTime(time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, "09 Februari 2024 pukul 08.07", FormatDateTime(time.Date(2024, 2, 9, 8, 7, 0, 0, time.UTC)))
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{-5, "0 B"},
		{1, "1.00 B"},
		{1023, "1023.00 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{10 * 1024 * 1024, "10.00 MB"},
		{5 * 1024 * 1024 * 1024, "5.00 GB"},
		{3 * 1024 * 1024 * 1024 * 1024, "3072.00 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFileSize(tt.in), "bytes=%d", tt.in)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", Truncate("", 10))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "Pené...", Truncate("Penélitian", 4))

	long := "Analisis Pengaruh Media Sosial terhadap Prestasi Belajar Mahasiswa"
	got := Truncate(long, 0)
	assert.Equal(t, long[:50]+"...", got)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "", Capitalize(""))
	assert.Equal(t, "Admin", Capitalize("admin"))
	assert.Equal(t, "ÉLan", Capitalize("éLan"))
	assert.Equal(t, "Published", Label("published"))
	assert.Equal(t, "In review", Label("in_review"))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@kampus.ac.id"}
	invalid := []string{"", "plain", "a@b", "a b@c.d", "@b.c", "a@.c@", "a@b c.d"}

	for _, s := range valid {
		assert.True(t, IsValidEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsValidEmail(s), s)
	}
}

func TestRandomString(t *testing.T) {
	re := regexp.MustCompile(`^[A-Za-z0-9]+$`)

	s := RandomString(0)
	assert.Len(t, s, DefaultRandomLength)
	assert.Regexp(t, re, s)

	s = RandomString(32)
	assert.Len(t, s, 32)
	assert.Regexp(t, re, s)

	assert.NotEqual(t, RandomString(32), RandomString(32))
}

func TestDebounce_OnlyLastCallFires(t *testing.T) {
	var mu sync.Mutex
	var got []int
	done := make(chan struct{}, 1)

	call, stop := Debounce(func(v int) {
		mu.Lock()
		got = append(got, v)
		mu.Unlock()
		done <- struct{}{}
	}, 20*time.Millisecond)
	defer stop()

	for i := 1; i <= 5; i++ {
		call(i)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced function never ran")
	}
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{5}, got)
}

func TestDebounce_Stop(t *testing.T) {
	fired := make(chan struct{}, 1)
	call, stop := Debounce(func(struct{}) { fired <- struct{}{} }, 10*time.Millisecond)

	call(struct{}{})
	stop()

	select {
	case <-fired:
		t.Fatal("stopped debounce must not fire")
	case <-time.After(60 * time.Millisecond):
	}
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Skripsi & Tesis", PlainText("<b>Skripsi</b> &amp; Tesis"))
	assert.Equal(t, "Judul", PlainText("<script>alert(1)</script>Judul"))
	assert.Equal(t, "plain", PlainText("  plain  "))
}

func TestCopyToClipboard(t *testing.T) {
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var copied string
	writeClipboard = func(s string) error { copied = s; return nil }
	require.True(t, CopyToClipboard(context.Background(), logging.Discard(), "http://x/#/browse"))
	assert.Equal(t, "http://x/#/browse", copied)

	writeClipboard = func(string) error { return errors.New("no clipboard utility") }
	assert.False(t, CopyToClipboard(context.Background(), logging.Discard(), "x"))
}
