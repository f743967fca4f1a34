// Package static serves files from a local directory or an S3 bucket as part of a request chain.
// Requests that do not name an existing file are handed to the next function.
package static

import (
	"context"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/advdv/cyprus"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
)

// Dir returns a function that serves files below root. It fails when root is not an existing
// directory so a misconfigured app does not start.
func Dir(root string) (cyprus.HandlerFunc, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "static root %q", root), cyprus.ErrRegistration)
	}

	if !info.IsDir() {
		return nil, errors.Mark(errors.Newf("static root %q is not a directory", root), cyprus.ErrRegistration)
	}

	fsys := os.DirFS(root)

	return func(req *cyprus.Request, res *cyprus.Response, next cyprus.Next) error {
		name, ok := fileName(req)
		if !ok {
			return next()
		}

		f, err := fsys.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			return next()
		} else if err != nil {
			return errors.Wrapf(err, "open %q", name)
		}
		defer f.Close()

		stat, err := f.Stat()
		if err != nil {
			return errors.Wrapf(err, "stat %q", name)
		}

		if stat.IsDir() {
			return next()
		}

		return send(req, res, typeByName(name), f)
	}, nil
}

// BucketAPI is the part of the S3 client the bucket source needs. It is implemented by [*s3.Client].
type BucketAPI interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var _ BucketAPI = (*s3.Client)(nil)

// Bucket returns a function that serves objects from bucket, looking up keys under prefix. The bucket
// is checked for existence before returning.
func Bucket(ctx context.Context, api BucketAPI, bucket, prefix string) (cyprus.HandlerFunc, error) {
	if _, err := api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "static bucket %q", bucket), cyprus.ErrRegistration)
	}

	return func(req *cyprus.Request, res *cyprus.Response, next cyprus.Next) error {
		name, ok := fileName(req)
		if !ok {
			return next()
		}

		key := path.Join(prefix, name)
		out, err := api.GetObject(req.Context(), &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})

		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return next()
		} else if err != nil {
			return errors.Wrapf(err, "get object %q", key)
		}
		defer out.Body.Close()

		ctype := aws.ToString(out.ContentType)
		if ctype == "" {
			ctype = typeByName(name)
		}

		return send(req, res, ctype, out.Body)
	}, nil
}

// fileName maps the request path to a slash-separated name relative to the root. Only GET and HEAD
// requests for a non-root path are served.
func fileName(req *cyprus.Request) (string, bool) {
	switch strings.ToUpper(req.Method()) {
	case http.MethodGet, http.MethodHead:
	default:
		return "", false
	}

	name := strings.TrimPrefix(path.Clean("/"+req.Path()), "/")
	if name == "" || !fs.ValidPath(name) {
		return "", false
	}

	return name, true
}

func typeByName(name string) string {
	if ctype := mime.TypeByExtension(path.Ext(name)); ctype != "" {
		return ctype
	}

	return string(cyprus.MimeOctetStream)
}

func send(req *cyprus.Request, res *cyprus.Response, ctype string, body io.Reader) error {
	res.Status(http.StatusOK).SetHeader("Content-Type", ctype)
	if strings.EqualFold(req.Method(), http.MethodHead) {
		return res.Send(nil)
	}

	return res.SendStream(body)
}
