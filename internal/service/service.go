package service

import (
	"database/sql"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"gitlab.com/dirk.krummacker/customer-crm/internal/config"
	dbmodel "gitlab.com/dirk.krummacker/customer-crm/internal/model"
	"gitlab.com/dirk.krummacker/customer-crm/pkg/model"
	"go.uber.org/zap"
)

// allowedOrderby are the allowed values for the 'orderby' URL parameter.
var allowedOrderby = []string{"createdat", "firstname", "lastname", "email", "status", "lastcontact"}

// allowedAscending are the allowed values for the 'ascending' URL parameter.
var allowedAscending = []string{"true", "false"}

// Service is the REST API for customer records. It keeps no state of its own besides the
// prepared statements; the database is the single source of truth.
type Service struct {
	db      *sqlx.DB
	logger  *zap.Logger
	metrics *Metrics
	now     func() time.Time
	newID   func() string

	// insert is a prepared statement for creating a customer.
	insert *sqlx.NamedStmt
	// selectWhereId is a prepared statement for selecting the customer with a given id.
	selectWhereId *sqlx.Stmt
	// updateWhereId is a prepared statement for replacing all mutable fields of a customer.
	updateWhereId *sqlx.NamedStmt
	// deleteWhereId is a prepared statement for deleting the customer with a given id.
	deleteWhereId *sqlx.Stmt
}

// CreateDatabase opens a connection pool with the parameters from the configuration.
func CreateDatabase(cfg *config.Config) (*sql.DB, error) {
	dsn := mysql.NewConfig()
	dsn.User = cfg.DBUser
	dsn.Passwd = cfg.DBPwd
	dsn.Net = "tcp"
	dsn.Addr = cfg.DBHost
	dsn.DBName = cfg.DBName
	dsn.ParseTime = true
	sqlDB, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return sqlDB, nil
}

// New wraps the specified sql database and prepares all statements. The database argument can
// be a real database for production use or a mock database within unit tests.
func New(sqlDB *sql.DB, logger *zap.Logger) (*Service, error) {
	s := &Service{
		db:      sqlx.NewDb(sqlDB, "mysql"),
		logger:  logger,
		metrics: NewMetrics(),
		now:     time.Now,
		newID:   uuid.NewString,
	}

	var err error
	s.insert, err = s.db.PrepareNamed(`
		INSERT INTO customers (id, firstname, lastname, email, phone, company, jobtitle, notes, status, lastcontact, createdat)
		VALUES (:id, :firstname, :lastname, :email, :phone, :company, :jobtitle, :notes, :status, :lastcontact, :createdat)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	s.selectWhereId, err = s.db.Preparex(`
		SELECT * FROM customers WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare select: %w", err)
	}
	s.updateWhereId, err = s.db.PrepareNamed(`
		UPDATE customers
		SET firstname = :firstname, lastname = :lastname, email = :email, phone = :phone,
			company = :company, jobtitle = :jobtitle, notes = :notes, status = :status,
			lastcontact = :lastcontact
		WHERE id = :id
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare update: %w", err)
	}
	s.deleteWhereId, err = s.db.Preparex(`
		DELETE FROM customers WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare delete: %w", err)
	}
	return s, nil
}

// Close releases the prepared statements and the database connection.
func (s *Service) Close() error {
	for _, stmt := range []interface{ Close() error }{s.insert, s.selectWhereId, s.updateWhereId, s.deleteWhereId} {
		stmt.Close()
	}
	return s.db.Close()
}

// Router initializes the REST API router and registers all endpoints. If requestLogging is
// false, gin does not log each request.
func (s *Service) Router(requestLogging bool) *gin.Engine {
	var router *gin.Engine
	if requestLogging {
		router = gin.Default()
	} else {
		router = gin.New()
		router.Use(gin.Recovery())
	}
	router.Use(s.metrics.Middleware())
	router.GET("/customers", s.findCustomers)
	router.POST("/customers", s.createCustomer)
	router.GET("/customers/:id", s.findCustomerByID)
	router.PUT("/customers/:id", s.updateCustomerByID)
	router.DELETE("/customers/:id", s.deleteCustomerByID)
	router.GET("/healthz", s.health)
	router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	return router
}

// findCustomers responds with the list of all customers. The list is never paged; the client
// filters and pages locally.
//
// The URL parameter 'orderby' specifies the customer property by which the results are sorted.
// Valid values are 'createdat', 'firstname', 'lastname', 'email', 'status' and 'lastcontact'.
// If it is omitted, the customers are sorted by creation time. If the URL parameter 'ascending'
// is set to 'false' then the sort order is reversed.
//
// REST API calls:
//
//	> curl "http://localhost:8080/customers"
//	> curl "http://localhost:8080/customers?orderby=lastname&ascending=false"
func (s *Service) findCustomers(c *gin.Context) {
	orderby, ascending, success := parseOrderbyAndAscending(c)
	if !success {
		return
	}
	query := fmt.Sprintf(`SELECT * FROM customers ORDER BY %s %s, id ASC`, orderby, ascending)
	var rows []dbmodel.CustomerRow
	if err := s.db.SelectContext(c.Request.Context(), &rows, query); err != nil {
		s.internalError(c, "select customers", err)
		return
	}
	customers := make([]model.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, row.Customer())
	}
	c.IndentedJSON(http.StatusOK, model.Ok(customers))
}

// parseOrderbyAndAscending inspects the URL parameters and determines values for the orderby
// and ascending values of the result set.
func parseOrderbyAndAscending(c *gin.Context) (orderby string, ascending string, success bool) {
	orderby = c.DefaultQuery("orderby", "createdat")
	if !slices.Contains(allowedOrderby, orderby) {
		fail(c, http.StatusBadRequest, "invalid orderby parameter")
		return "", "", false
	}
	ascendingAsString := c.DefaultQuery("ascending", "true")
	if !slices.Contains(allowedAscending, ascendingAsString) {
		fail(c, http.StatusBadRequest, "invalid ascending parameter")
		return orderby, "", false
	}
	if ascendingAsString == "true" {
		ascending = "ASC"
	} else {
		ascending = "DESC"
	}
	return orderby, ascending, true
}

// createCustomer inserts the customer specified in the request's JSON into the database. It
// responds with the full customer including the newly assigned id and creation time. A missing
// status becomes 'Lead'.
//
// Example REST API call:
//
//	> curl http://localhost:8080/customers --request "POST" --include --header "Content-Type: application/json" --data '{"firstName": "Erika", "lastName": "Mustermann", "email": "erika@example.com"}'
func (s *Service) createCustomer(c *gin.Context) {
	draft, ok := s.bindDraft(c)
	if !ok {
		return
	}
	row := dbmodel.NewCustomerRow(s.newID(), s.now().UTC().Truncate(time.Second), draft)
	if _, err := s.insert.ExecContext(c.Request.Context(), row); err != nil {
		s.internalError(c, "insert customer", err)
		return
	}
	s.logger.Info("customer created", zap.String("id", row.Id))
	c.IndentedJSON(http.StatusCreated, model.Ok(row.Customer()))
}

// findCustomerByID locates the customer whose id matches the id parameter of the request URL
// and returns it.
//
// Example REST API call:
//
//	> curl http://localhost:8080/customers/8c7f3f0e-2a55-4c1e-9d0b-4d3c1b1d6a11
func (s *Service) findCustomerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	row, found, err := s.selectCustomer(c, id)
	if err != nil {
		s.internalError(c, "select customer", err)
		return
	}
	if !found {
		fail(c, http.StatusNotFound, model.ErrNotFound.Error())
		return
	}
	c.IndentedJSON(http.StatusOK, model.Ok(row.Customer()))
}

// updateCustomerByID replaces all mutable fields of the customer whose id matches the id
// parameter of the request URL. Fields missing in the JSON are cleared; there is no partial
// update. It responds with the new version of the customer.
//
// Example REST API call:
//
//	> curl http://localhost:8080/customers/8c7f3f0e-2a55-4c1e-9d0b-4d3c1b1d6a11 --request "PUT" --include --header "Content-Type: application/json" --data '{"firstName": "Rudi", "lastName": "Völler", "email": "rudi@example.com", "status": "Active"}'
func (s *Service) updateCustomerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	draft, ok := s.bindDraft(c)
	if !ok {
		return
	}
	existing, found, err := s.selectCustomer(c, id)
	if err != nil {
		s.internalError(c, "select customer", err)
		return
	}
	if !found {
		fail(c, http.StatusNotFound, model.ErrNotFound.Error())
		return
	}
	row := dbmodel.NewCustomerRow(id, existing.CreatedAt, draft)
	if _, err := s.updateWhereId.ExecContext(c.Request.Context(), row); err != nil {
		s.internalError(c, "update customer", err)
		return
	}
	c.IndentedJSON(http.StatusOK, model.Ok(row.Customer()))
}

// deleteCustomerByID deletes the customer whose id matches the id parameter of the request URL.
//
// Example REST API call:
//
//	> curl http://localhost:8080/customers/8c7f3f0e-2a55-4c1e-9d0b-4d3c1b1d6a11 --request "DELETE"
func (s *Service) deleteCustomerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	result, err := s.deleteWhereId.ExecContext(c.Request.Context(), id)
	if err != nil {
		s.internalError(c, "delete customer", err)
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		s.internalError(c, "delete customer", err)
		return
	}
	if rowsAffected != 1 {
		fail(c, http.StatusNotFound, model.ErrNotFound.Error())
		return
	}
	s.logger.Info("customer deleted", zap.String("id", id))
	c.IndentedJSON(http.StatusOK, model.Ok[any](nil))
}

// health answers OK as long as the database is reachable.
func (s *Service) health(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Warn("database ping failed", zap.Error(err))
		fail(c, http.StatusServiceUnavailable, model.ErrUnavailable.Error())
		return
	}
	c.IndentedJSON(http.StatusOK, model.Ok("available"))
}

// bindDraft reads the draft from the request body, applies the defaults and validates it. On
// failure it answers the request with BAD REQUEST.
func (s *Service) bindDraft(c *gin.Context) (model.CustomerDraft, bool) {
	var draft model.CustomerDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		fail(c, http.StatusBadRequest, "invalid JSON")
		return draft, false
	}
	draft = draft.WithDefaults()
	if err := draft.Validate(s.now()); err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return draft, false
	}
	return draft, true
}

// selectCustomer loads a single customer row. found is false if no customer has the id.
func (s *Service) selectCustomer(c *gin.Context, id string) (row dbmodel.CustomerRow, found bool, err error) {
	var rows []dbmodel.CustomerRow
	if err := s.selectWhereId.SelectContext(c.Request.Context(), &rows, id); err != nil {
		return row, false, err
	}
	if len(rows) == 0 {
		return row, false, nil
	}
	return rows[0], true, nil
}

// internalError logs the cause and answers with INTERNAL SERVER ERROR without exposing details.
func (s *Service) internalError(c *gin.Context, action string, err error) {
	s.logger.Error(action, zap.Error(err))
	fail(c, http.StatusInternalServerError, "internal error")
}

// parseID validates the id parameter of the request URL. Ids that cannot exist are answered
// with NOT FOUND without reaching out to the database.
func parseID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusNotFound, "invalid id parameter")
		return "", false
	}
	return id, true
}

// fail aborts the request with the given status and a failure result.
func fail(c *gin.Context, status int, reason string) {
	c.AbortWithStatusJSON(status, model.Failed[any](reason))
}
