package compiler

//go:generate go run github.com/matryer/moq -out runner_generated_mock_test.go -rm -stub -with-resets . Runner
