package photos

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = b
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := f.objects[aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3(t *testing.T) {
	ctx := context.Background()

	t.Run("it saves and deletes a photo", func(t *testing.T) {
		fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
		testee := newS3(fake, "doctors", "https://photos.example.com/doctors/")

		publicPath, err := testee.Save(ctx, "a.png", "image/png", bytes.NewReader([]byte("content")))
		if err != nil {
			t.Fatal(err)
		}
		if publicPath != "https://photos.example.com/doctors/a.png" {
			t.Errorf("public path: %s", publicPath)
		}
		if got := string(fake.objects["a.png"]); got != "content" {
			t.Errorf("object: %q", got)
		}
		if got := fake.types["a.png"]; got != "image/png" {
			t.Errorf("content type: %q", got)
		}

		if err := testee.Delete(ctx, publicPath); err != nil {
			t.Fatal(err)
		}
		if _, ok := fake.objects["a.png"]; ok {
			t.Error("object is not deleted")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		for name, testcase := range map[string]struct {
			publicPath string
			err        error
		}{
			"missing object":    {publicPath: "https://photos.example.com/doctors/missing.png", err: ErrMissing},
			"other site":        {publicPath: "https://evil.example.com/doctors/a.png", err: ErrForbidden},
			"nested key":        {publicPath: "https://photos.example.com/doctors/x/a.png", err: ErrForbidden},
			"prefix itself":     {publicPath: "https://photos.example.com/doctors/", err: ErrForbidden},
			"local public path": {publicPath: "/doctors/a.png", err: ErrForbidden},
		} {
			t.Run(name, func(t *testing.T) {
				fake := &fakeS3{objects: map[string][]byte{"a.png": nil}, types: map[string]string{}}
				testee := newS3(fake, "doctors", "https://photos.example.com/doctors")
				if err := testee.Delete(ctx, testcase.publicPath); !errors.Is(err, testcase.err) {
					t.Errorf("unexpected error: %v (want %v)", err, testcase.err)
				}
			})
		}
	})

	t.Run("errors from S3 are reported", func(t *testing.T) {
		cause := errors.New("connection refused")
		fake := &fakeS3{objects: map[string][]byte{}, types: map[string]string{}, err: cause}
		testee := newS3(fake, "doctors", "https://photos.example.com/doctors")

		if _, err := testee.Save(ctx, "a.png", "image/png", bytes.NewReader(nil)); !errors.Is(err, cause) {
			t.Errorf("Save: unexpected error: %v", err)
		}
		if err := testee.Delete(ctx, "https://photos.example.com/doctors/a.png"); !errors.Is(err, cause) {
			t.Errorf("Delete: unexpected error: %v", err)
		}
	})
}

func TestIsNotFound(t *testing.T) {
	for name, testcase := range map[string]struct {
		err  error
		want bool
	}{
		"NotFound":         {err: &types.NotFound{}, want: true},
		"NoSuchKey":        {err: &types.NoSuchKey{}, want: true},
		"generic NotFound": {err: &smithy.GenericAPIError{Code: "NotFound"}, want: true},
		"AccessDenied":     {err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: false},
		"other":            {err: errors.New("timeout"), want: false},
	} {
		t.Run(name, func(t *testing.T) {
			if got := isNotFound(testcase.err); got != testcase.want {
				t.Errorf("isNotFound: %v, want %v", got, testcase.want)
			}
		})
	}
}
