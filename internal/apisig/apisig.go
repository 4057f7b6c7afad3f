// Package apisig builds canonical signed requests.
//
// The signature is the lowercase hex MD5 of the shared secret followed by
// the concatenation of name and value of every kept parameter, sorted by
// name. Sorting makes the signature independent of insertion order.
package apisig

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strings"

	"github.com/goflickr/goflickr/internal/apiparam"
)

// SignatureParam is the name of the parameter carrying the signature.
const SignatureParam = "api_sig"

// ErrNoParameters indicates that we were asked to sign an empty parameter set.
var ErrNoParameters = errors.New("apisig: no parameters")

// Signature computes the signature of params using secret.
func Signature(secret string, params apiparam.List) (string, error) {
	kept := params.Kept()
	if len(kept) <= 0 {
		return "", ErrNoParameters
	}
	sorted := make(apiparam.List, len(kept))
	copy(sorted, kept)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Name() < sorted[j].Name()
	})
	var sb strings.Builder
	sb.WriteString(secret)
	for _, p := range sorted {
		sb.WriteString(p.Name())
		sb.WriteString(p.Value())
	}
	sum := md5.Sum([]byte(sb.String()))
	return hex.EncodeToString(sum[:]), nil
}

// EncodeQuery returns the `&`-joined `name=value` query for the kept params
// in their original order, followed by the signature if secret is not empty.
func EncodeQuery(params apiparam.List, secret string) (string, error) {
	kept := params.Kept()
	if len(kept) <= 0 {
		return "", ErrNoParameters
	}
	pairs := make([]string, 0, len(kept)+1)
	for _, p := range kept {
		pairs = append(pairs, url.QueryEscape(p.Name())+"="+url.QueryEscape(p.Value()))
	}
	if secret != "" {
		sig, err := Signature(secret, kept)
		if err != nil {
			return "", err
		}
		pairs = append(pairs, SignatureParam+"="+sig)
	}
	return strings.Join(pairs, "&"), nil
}

// BuildURL returns baseURL with the query built by [EncodeQuery]. Any
// query already present in baseURL is replaced.
func BuildURL(baseURL string, params apiparam.List, secret string) (string, error) {
	URL, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	query, err := EncodeQuery(params, secret)
	if err != nil {
		return "", err
	}
	URL.RawQuery = query
	return URL.String(), nil
}
