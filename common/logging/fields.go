package logging

const (
	// FieldError can be used instead of Err(err) if you have only the error message string.
	FieldError = "err"

	FieldComponent = "component"
	FieldDuration  = "duration"

	FieldSolcPath    = "solc"
	FieldSolcVersion = "solcVersion"
	FieldSourceFile  = "source"
	FieldBuildDir    = "buildDir"
	FieldFile        = "file"

	FieldContract        = "contract"
	FieldContractAddress = "contractAddress"
	FieldMethod          = "method"

	FieldChainId        = "chainId"
	FieldAccountAddress = "accountAddress"
	FieldTxHash         = "txHash"
	FieldBlockNumber    = "blockNumber"
	FieldGasUsed        = "gasUsed"

	FieldScenario = "scenario"
	FieldRunId    = "runId"
)
