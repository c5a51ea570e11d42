package graph

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/telmahealth/mobile-gateway/internal/logger"
	"github.com/telmahealth/mobile-gateway/internal/mobile"
	"github.com/telmahealth/mobile-gateway/internal/repos"
	"github.com/telmahealth/mobile-gateway/internal/requestdata"
	"github.com/telmahealth/mobile-gateway/internal/types"
)

// Deps are the collaborators the schema resolvers delegate to.
type Deps struct {
	Log               *logger.Logger
	EnrollmentService mobile.EnrollmentService
	RenewalService    mobile.RenewalService
	ControlRepo       repos.ControlRepo
}

var errorDetailType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MutationErrorDetail",
	Fields: graphql.Fields{
		"message": &graphql.Field{Type: graphql.String},
		"detail":  &graphql.Field{Type: graphql.String},
	},
})

// mutationResultType is the payload of both mutations: a null errors list
// means success.
var mutationResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MutationResult",
	Fields: graphql.Fields{
		"errors": &graphql.Field{Type: graphql.NewList(errorDetailType)},
	},
})

var controlType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Control",
	Fields: graphql.Fields{
		"name":          &graphql.Field{Type: graphql.String},
		"adjustability": &graphql.Field{Type: graphql.String},
		"usage":         &graphql.Field{Type: graphql.String},
	},
})

var insureeEnrollmentInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "InsureeEnrollmentInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"chfId":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"uuid":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"lastName":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"otherNames": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"dob":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"gender":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"head":       &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"phone":      &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var familyEnrollmentInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "FamilyEnrollmentInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"id":             &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"uuid":           &graphql.InputObjectFieldConfig{Type: graphql.String},
		"headInsuree":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(insureeEnrollmentInput)},
		"address":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"poverty":        &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
		"familyType":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"confirmationNo": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var policyEnrollmentInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PolicyEnrollmentInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"mobileId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"uuid":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"enrollDate": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"startDate":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"expiryDate": &graphql.InputObjectFieldConfig{Type: graphql.String},
		"value":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"productId":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"officerId":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var premiumEnrollmentInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "PremiumEnrollmentInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"policyId":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"uuid":       &graphql.InputObjectFieldConfig{Type: graphql.String},
		"amount":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"receipt":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"payDate":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"payType":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"payerUuid":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"isPhotoFee": &graphql.InputObjectFieldConfig{Type: graphql.Boolean},
	},
})

// NewSchema assembles the mobile GraphQL schema: the two mutations plus the
// read-only control lookup.
func NewSchema(deps Deps) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"control": &graphql.Field{
				Type: graphql.NewList(controlType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.ControlRepo.List(p.Context, nil)
				},
			},
			"controlStr": &graphql.Field{
				Type: graphql.NewList(controlType),
				Args: graphql.FieldConfigArgument{
					"str": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					str, _ := p.Args["str"].(string)
					if str == "" {
						return deps.ControlRepo.List(p.Context, nil)
					}
					return deps.ControlRepo.Search(p.Context, nil, str)
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"mobileEnrollment": &graphql.Field{
				Type: mutationResultType,
				Args: graphql.FieldConfigArgument{
					"family":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(familyEnrollmentInput)},
					"insurees":         &graphql.ArgumentConfig{Type: graphql.NewList(insureeEnrollmentInput)},
					"policies":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(policyEnrollmentInput))},
					"premiums":         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(premiumEnrollmentInput))},
					"clientMutationId": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user := requestdata.GetUser(p.Context)
					data, _ := snakeCaseKeys(p.Args).(map[string]any)
					delete(data, "client_mutation_id")
					errs := deps.EnrollmentService.Enroll(p.Context, user, data)
					return enrollmentResult(errs), nil
				},
			},
			"mobilePolicyRenewalAndPremium": &graphql.Field{
				Type: mutationResultType,
				Args: graphql.FieldConfigArgument{
					"renewalId":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"renewalDate":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"officerId":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"receipt":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"payType":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"amount":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"payerId":          &graphql.ArgumentConfig{Type: graphql.Int},
					"clientMutationId": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					user := requestdata.GetUser(p.Context)
					input, err := renewalInputFromArgs(p.Args)
					if err != nil {
						return enrollmentResult([]types.MutationError{{
							Message: mobile.FailedToEnrollMessage,
							Detail:  err.Error(),
						}}), nil
					}
					errs := deps.RenewalService.RenewAndPay(p.Context, user, input)
					return enrollmentResult(errs), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func enrollmentResult(errs []types.MutationError) map[string]any {
	if len(errs) == 0 {
		return map[string]any{"errors": nil}
	}
	return map[string]any{"errors": errs}
}

func renewalInputFromArgs(args map[string]any) (mobile.RenewalInput, error) {
	var input mobile.RenewalInput

	renewalID, ok := args["renewalId"].(int)
	if !ok {
		return input, fmt.Errorf("renewalId is required")
	}
	rawDate, _ := args["renewalDate"].(string)
	renewalDate, err := time.Parse("2006-01-02", rawDate)
	if err != nil {
		return input, fmt.Errorf("renewalDate %q is not a valid date", rawDate)
	}
	officerID, _ := args["officerId"].(int)
	rawAmount, _ := args["amount"].(string)
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return input, fmt.Errorf("amount %q is not a valid decimal", rawAmount)
	}

	input = mobile.RenewalInput{
		RenewalID:   uint(renewalID),
		RenewalDate: renewalDate,
		OfficerID:   uint(officerID),
		Receipt:     args["receipt"].(string),
		PayType:     args["payType"].(string),
		Amount:      amount,
	}
	if payerID, ok := args["payerId"].(int); ok {
		p := uint(payerID)
		input.PayerID = &p
	}
	return input, nil
}
