package main

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/urfave/cli"
)

var (
	fAWSRegion = "aws-region"
	fAWSAccess = "aws-access-key"
	fAWSSecret = "aws-secret-key"
)

var flagsAws = []cli.Flag{
	cli.StringFlag{
		Name:   fAWSRegion,
		Value:  "us-east-1",
		Usage:  "The AWS region of the stream",
		EnvVar: "AWS_REGION",
	},
	cli.StringFlag{
		Name:   fAWSAccess,
		Usage:  "The AWS access key (default credential chain when empty)",
		EnvVar: "AWS_ACCESS_KEY_ID",
	},
	cli.StringFlag{
		Name:   fAWSSecret,
		Usage:  "The AWS secret key",
		EnvVar: "AWS_SECRET_ACCESS_KEY",
	},
}

func newKinesis(ctx *cli.Context) (*kinesis.Kinesis, error) {
	cfg := aws.NewConfig().WithRegion(ctx.String(fAWSRegion))
	if ctx.String(fAWSAccess) != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(
			ctx.String(fAWSAccess), ctx.String(fAWSSecret), ""))
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return kinesis.New(sess), nil
}
