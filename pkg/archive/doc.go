// Package archive stores accepted form submissions.
//
// An Archiver receives a Record for every successful submission. Two
// implementations are provided: S3Archiver writes each record as a JSON
// object to an S3 bucket, and LogArchiver logs it. Sink adapts an
// Archiver to a form.WithOnFinish callback:
//
//	client, err := archive.NewS3Client(ctx, archive.S3Config{Region: "eu-west-1"})
//	if err != nil {
//	    return err
//	}
//	store := archive.NewS3Archiver(client, "submissions", "forms/")
//
//	c := form.New(
//	    form.WithName("signup"),
//	    form.WithOnFinish(archive.Sink(store, "signup")),
//	)
//
// Fields named in the redaction list (by default anything containing
// "password") are replaced before the record leaves the process.
package archive
